package auth

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	registerHandler(w, r)
}
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	loginHandler(w, r, false)
}
func AdminLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	loginHandler(w, r, true)
}
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	getProfileHandler(w, r)
}
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	updateProfileHandler(w, r)
}
func DeleteAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	deleteAccountHandler(w, r)
}
