package models

import "time"

type ContactMessage struct {
	MessageID string    `json:"messageid" bson:"messageid"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty" bson:"subject,omitempty"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
