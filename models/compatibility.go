package models

// CompatibilityScore is the EdgeRank output for one viewer/candidate
// pair: Total = Affinity x Weight x Decay / 100, all bounded to [0,100]
// with Decay in (0,1]. Transient, computed per ranking call.
type CompatibilityScore struct {
	Total    float64 `json:"total"`
	Affinity float64 `json:"affinity"`
	Weight   float64 `json:"weight"`
	Decay    float64 `json:"decay"`
}
