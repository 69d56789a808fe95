package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinClientNameLength  = 2
	MaxClientNameLength  = 100
	MaxDescriptionLength = 5000
	MaxNotesLength       = 2000
	MinPhoneDigits       = 7
	MaxPhoneLength       = 20
	MinFullNameLength    = 2
	MaxFullNameLength    = 100
	MaxPositionLength    = 100
	MinBudget            = 0.0
	MaxBudget            = 100000000.0 // 100 миллионов
)

// ValidateLength проверяет длину строки.
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

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	localRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !localRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateClientName проверяет имя клиента в заявке.
func ValidateClientName(name string) error {
	if name == "" {
		return fmt.Errorf("имя клиента обязательно")
	}
	return ValidateLength("имя клиента", strings.TrimSpace(name), MinClientNameLength, MaxClientNameLength)
}

// ValidateFullName проверяет ФИО сотрудника.
func ValidateFullName(name string) error {
	if name == "" {
		return fmt.Errorf("имя сотрудника обязательно")
	}
	return ValidateLength("имя сотрудника", strings.TrimSpace(name), MinFullNameLength, MaxFullNameLength)
}

// ValidatePhone проверяет телефонный номер: допустимы цифры, пробелы,
// скобки, дефисы и ведущий плюс.
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("телефон обязателен")
	}

	phone = strings.TrimSpace(phone)
	if utf8.RuneCountInString(phone) > MaxPhoneLength {
		return fmt.Errorf("телефон не может быть длиннее %d символов", MaxPhoneLength)
	}

	phoneRegex := regexp.MustCompile(`^\+?[0-9\s()-]+$`)
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("телефон содержит недопустимые символы")
	}

	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < MinPhoneDigits {
		return fmt.Errorf("телефон должен содержать не менее %d цифр", MinPhoneDigits)
	}

	return nil
}

// ValidateDescription проверяет описание заявки.
func ValidateDescription(description *string) error {
	if description != nil && *description != "" {
		desc := strings.TrimSpace(*description)
		if err := ValidateLength("описание", desc, 0, MaxDescriptionLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateNotes проверяет комментарий к записи на звонок.
func ValidateNotes(notes *string) error {
	if notes != nil && *notes != "" {
		n := strings.TrimSpace(*notes)
		if err := ValidateLength("комментарий", n, 0, MaxNotesLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBudget проверяет бюджет.
func ValidateBudget(budget float64) error {
	if budget < MinBudget {
		return fmt.Errorf("бюджет не может быть отрицательным")
	}
	if budget > MaxBudget {
		return fmt.Errorf("бюджет не может превышать %.0f", MaxBudget)
	}
	return nil
}

// ValidatePosition проверяет должность сотрудника.
func ValidatePosition(position *string) error {
	if position != nil && *position != "" {
		p := strings.TrimSpace(*position)
		if err := ValidateLength("должность", p, 0, MaxPositionLength); err != nil {
			return err
		}
	}
	return nil
}
