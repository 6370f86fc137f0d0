package model

// Subscriber is one mailing-list entry. Identity is the pair itself;
// duplicate lines produce duplicate notifications.
type Subscriber struct {
	Email string
	Area  string
}
