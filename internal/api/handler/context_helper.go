package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/jwt"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/response"
)

// MustGetUserID extracts user_id injected by the JWT middleware. On failure
// it writes the 401 itself; the caller should just return when ok is false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetClaims extracts the full JWT claims from the context.
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	return claims, true
}
