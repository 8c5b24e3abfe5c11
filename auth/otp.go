package auth

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/smtp"
	"os"
	"strings"
	"time"

	"mcsons/db"
	"mcsons/rdx"
	"mcsons/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func GenerateOTP(length int) string {
	digits := "0123456789"
	var otp strings.Builder
	for i := 0; i < length; i++ {
		otp.WriteByte(digits[rand.Intn(len(digits))])
	}
	return otp.String()
}

func SendEmailOTP(toEmail, otp string) error {
	from := os.Getenv("SMTP_FROM")
	pass := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpPort == "" {
		smtpPort = "587"
	}

	msg := []byte("Subject: Email Verification\n\nYour OTP is: " + otp)

	auth := smtp.PlainAuth("", from, pass, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{toEmail}, msg)
}

func RequestOTPHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	email := utils.NormalizeEmail(input.Email)
	otp := GenerateOTP(6)

	if err := SendEmailOTP(email, otp); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	if err := rdx.SetWithExpiry("otp:"+email, otp, 10*time.Minute); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store OTP")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "OTP sent to email"})
}

func VerifyOTPHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	email := utils.NormalizeEmail(input.Email)
	storedOTP, err := rdx.RdxGet("otp:" + email)
	if err != nil || storedOTP != input.OTP {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired OTP")
		return
	}

	_, err = db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"email": email},
		bson.M{"$set": bson.M{"email_verified": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify user")
		return
	}

	rdx.RdxDel("otp:" + email)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "User verified successfully"})
}
