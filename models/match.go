package models

// Match is created exactly once when both sides of a pair swiped right.
// The table is keyed by PairKey so a second concurrent mutual-swipe
// cannot produce a duplicate record for the same unordered pair.
type Match struct {
	PairKey   string `dynamodbav:"pairKey" json:"pairKey"` // Partition Key, canonical min#max
	MatchID   string `dynamodbav:"matchId" json:"matchId"`
	User1ID   string `dynamodbav:"user1Id" json:"user1Id"`
	User2ID   string `dynamodbav:"user2Id" json:"user2Id"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// HasUser reports whether userID is one of the two matched users.
func (m Match) HasUser(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// OtherUser returns the match partner of userID.
func (m Match) OtherUser(userID string) string {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

// PairKey builds the canonical key for an unordered user pair.
func PairKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + "#" + userB
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// MatchIDIndex is the GSI used to look a match up by its matchId
const MatchIDIndex = "matchId-index"
