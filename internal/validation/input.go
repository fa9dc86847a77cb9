package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinFullNameLength = 2
	MaxFullNameLength = 100
	MinHandleLength   = 3
	MaxHandleLength   = 30
	MaxContactLength  = 100
	MaxPortfolioURLLength = 500
	MinScore          = 1
	MaxScore          = 5
)

var handleRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateFullName проверяет имя и фамилию.
func ValidateFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return fmt.Errorf("имя обязательно")
	}
	return ValidateLength("имя", fullName, MinFullNameLength, MaxFullNameLength)
}

// ValidateHandle проверяет юзернейм (латиница, цифры, подчёркивание).
func ValidateHandle(handle string) error {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return fmt.Errorf("юзернейм обязателен")
	}
	if err := ValidateLength("юзернейм", handle, MinHandleLength, MaxHandleLength); err != nil {
		return err
	}
	if !handleRegex.MatchString(handle) {
		return fmt.Errorf("юзернейм может содержать только буквы, цифры и подчеркивание")
	}
	return nil
}

// ValidateEmail — базовая проверка формата email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email обязателен")
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || !strings.Contains(parts[1], ".") {
		return fmt.Errorf("некорректный формат email")
	}
	return nil
}

// ValidatePortfolioURL проверяет ссылку на портфолио:
// только http/https и непустой хост.
func ValidatePortfolioURL(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return fmt.Errorf("ссылка на портфолио обязательна")
	}
	if err := ValidateLength("ссылка на портфолио", link, 0, MaxPortfolioURLLength); err != nil {
		return err
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("некорректный формат URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("ссылка должна начинаться с http:// или https://")
	}
	if parsed.Host == "" {
		return fmt.Errorf("ссылка должна содержать доменное имя")
	}
	return nil
}

// ValidateContact проверяет контакт для связи.
func ValidateContact(contact string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return fmt.Errorf("контакт обязателен")
	}
	return ValidateLength("контакт", contact, 0, MaxContactLength)
}

// ValidateScore проверяет, что оценка в диапазоне 1-5.
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("оценка должна быть от %d до %d", MinScore, MaxScore)
	}
	return nil
}
