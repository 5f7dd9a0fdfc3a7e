package Token

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Models"
)

// GenerateToken issues a JWT carrying the verified (role, id) pair.
func GenerateToken(actor Models.Actor) (string, error) {

	tokenLifespan, err := strconv.Atoi(os.Getenv("TOKEN_HOUR_LIFESPAN"))
	if err != nil {
		tokenLifespan = 24
	}

	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["role"] = string(actor.Role)
	claims["id"] = actor.ID
	claims["exp"] = time.Now().Add(time.Hour * time.Duration(tokenLifespan)).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(os.Getenv("API_SECRET")))
}

func TokenValid(c *gin.Context) error {
	tokenString := ExtractToken(c)
	_, err := jwt.Parse(tokenString, keyFunc)
	return err
}

func ExtractToken(c *gin.Context) string {
	token := c.Query("token")
	if token != "" {
		return token
	}
	bearerToken := c.Request.Header.Get("Authorization")
	if len(strings.Split(bearerToken, " ")) == 2 {
		return strings.Split(bearerToken, " ")[1]
	}
	return ""
}

// ExtractActor reads the (role, id) pair back out of a valid token.
func ExtractActor(c *gin.Context) (Models.Actor, error) {

	tokenString := ExtractToken(c)
	token, err := jwt.Parse(tokenString, keyFunc)
	if err != nil {
		return Models.Actor{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Models.Actor{}, errors.New("invalid token claims")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return Models.Actor{}, errors.New("token missing role claim")
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return Models.Actor{}, errors.New("token missing id claim")
	}

	return Models.Actor{Role: Models.Role(role), ID: uint(id)}, nil
}

func keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(os.Getenv("API_SECRET")), nil
}
