package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"James", "John", "Robert", "Michael", "David", "William", "Thomas",
	"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara", "Susan",
	"Daniel", "Matthew", "Andrew", "Joshua", "Ruth", "Esther", "Naomi",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Miller", "Davis",
	"Wilson", "Anderson", "Taylor", "Thomas", "Moore", "Jackson", "White",
	"Harris", "Martin", "Thompson", "Young", "Walker", "Hall",
}

func GenerateRandomMember() *domain.Member {
	return &domain.Member{
		FirstName: firstNames[rand.Intn(len(firstNames))],
		LastName:  lastNames[rand.Intn(len(lastNames))],
	}
}

var digits = "0123456789"

// UsernameFromFullName derives a login name by lowercasing the name and
// appending a few random digits to dodge collisions.
func UsernameFromFullName(fullName string) string {
	username := strings.ToLower(strings.ReplaceAll(fullName, " ", "."))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	member := GenerateRandomMember()
	fullName := member.FullName()
	username := UsernameFromFullName(fullName)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	roles := []domain.Role{domain.RoleViewer, domain.RoleCoordinator, domain.RoleAdministrator}

	return &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         roles[rand.Intn(len(roles))],
	}, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}
