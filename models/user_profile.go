package models

import "time"

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID        string `dynamodbav:"userId" json:"userId"`
	FullName      string `dynamodbav:"fullName,omitempty" json:"fullName,omitempty"`
	College       string `dynamodbav:"college,omitempty" json:"college,omitempty"`
	Department    string `dynamodbav:"department,omitempty" json:"department,omitempty"`
	Batch         string `dynamodbav:"batch,omitempty" json:"batch,omitempty"`
	Location      string `dynamodbav:"location,omitempty" json:"location,omitempty"`
	Bio           string `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL     string `dynamodbav:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	IsVerified    bool   `dynamodbav:"isVerified" json:"isVerified"`
	EmailVerified bool   `dynamodbav:"emailVerified" json:"emailVerified"`
	IsBanned      bool   `dynamodbav:"isBanned" json:"isBanned"`
	PostCount     int    `dynamodbav:"postCount" json:"postCount"`
	LastActiveAt  string `dynamodbav:"lastActiveAt,omitempty" json:"lastActiveAt,omitempty"`
	CreatedAt     string `dynamodbav:"createdAt" json:"createdAt"`

	// IsOnline is materialized per request from the connection registry,
	// never persisted.
	IsOnline bool `dynamodbav:"-" json:"isOnline"`
}

// LastActive returns the user's last activity timestamp, falling back to
// the account creation time when the user was never active.
func (p UserProfile) LastActive() time.Time {
	if t, err := time.Parse(time.RFC3339, p.LastActiveAt); err == nil {
		return t
	}
	t, _ := time.Parse(time.RFC3339, p.CreatedAt)
	return t
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
