package entity

import "time"

// Credentials are temporary, role-scoped credentials for one target account.
// They are owned by a single retrieval attempt and never serialized.
type Credentials struct {
	AccessKeyID     string    `json:"-"`
	SecretAccessKey string    `json:"-"`
	SessionToken    string    `json:"-"`
	Expires         time.Time `json:"-"`
}

// HasSessionToken reports whether the credentials are temporary. Long-lived
// IAM user or root keys carry no token and cannot use the federated endpoint.
func (c Credentials) HasSessionToken() bool {
	return c.SessionToken != ""
}
