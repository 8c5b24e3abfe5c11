package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"mcsons/db"
	"mcsons/models"
	"mcsons/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmitMessage stores a contact-form submission.
func SubmitMessage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Message = strings.TrimSpace(input.Message)
	if input.Name == "" || input.Email == "" || input.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and message are required")
		return
	}

	msg := models.ContactMessage{
		MessageID: "msg" + utils.GenerateID(12),
		Name:      input.Name,
		Email:     utils.NormalizeEmail(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   input.Message,
		CreatedAt: time.Now(),
	}

	if _, err := db.ContactsCollection.InsertOne(ctx, msg); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit message")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Message received. We will get back to you soon.",
	})
}

// GetMessages lists contact submissions for the admin console, newest first.
func GetMessages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r, 50)

	cursor, err := db.ContactsCollection.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(opts.Skip())).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve messages")
		return
	}
	defer cursor.Close(ctx)

	messages := []models.ContactMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve messages")
		return
	}

	total, err := db.ContactsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":     true,
		"messages":    messages,
		"totalPages":  utils.TotalPages(total, opts.Limit),
		"currentPage": opts.Page,
		"total":       total,
	})
}
