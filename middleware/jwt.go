package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"lms/config"
	"lms/models"
)

// GenerateJWT mints a token carrying the identity claims the external
// provider would supply. Used by integration tooling and tests.
func GenerateJWT(cfg *config.Config, email, name string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"name":  name,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTKey))
}

// JWT verifies the bearer token and resolves the caller to a local User
// row. Identity (email, name) comes from the external provider; the row is
// created on first sight so purchases and progress always have a user to
// reference. The resolved id and role are stored in Locals.
func JWT(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
		}

		tokenString := authHeader[len("Bearer "):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.JWTKey), nil
		})
		if err != nil || !token.Valid {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
		}

		email, _ := claims["email"].(string)
		if email == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
		}
		name, _ := claims["name"].(string)

		// Struct condition so the email is carried into the insert on
		// first sight; a string condition would create the row without it.
		var user models.User
		if err := db.Where(models.User{Email: email}).
			Attrs(models.User{Name: name}).
			FirstOrCreate(&user).Error; err != nil {
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve user!", nil)
		}

		c.Locals("userId", user.ID)
		c.Locals("userRole", user.Role)

		return c.Next()
	}
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
}
