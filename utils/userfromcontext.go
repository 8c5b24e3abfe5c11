package utils

import (
	"net/http"

	"mcsons/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRolesFromRequest(r *http.Request) []string {
	roles, ok := r.Context().Value(globals.RoleKey).([]string)
	if !ok {
		return nil
	}
	return roles
}

// IsAdminRequest applies the storefront's only role distinction.
func IsAdminRequest(r *http.Request) bool {
	return Contains(GetRolesFromRequest(r), "admin")
}
