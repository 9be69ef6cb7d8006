package seeds

import (
	"fmt"
	"log"
	"os"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"quanlysinhvien_backend/internals/constants"
	studentModel "quanlysinhvien_backend/internals/features/academics/students/model"
	authModel "quanlysinhvien_backend/internals/features/users/auth/model"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin@@123"
)

// SeedUserAccounts creates one admin account plus a viewer account per
// student row. Usernames follow "<given name without accents><student code>"
// and the initial viewer password is the student code itself. Existing
// usernames are left untouched.
func SeedUserAccounts(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}

	var students []studentModel.StudentModel
	if err := db.Order("student_code").Find(&students).Error; err != nil {
		return err
	}

	var existing []string
	if err := db.Model(&authModel.UserModel{}).
		Pluck("user_username", &existing).Error; err != nil {
		return err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, u := range existing {
		taken[u] = struct{}{}
	}

	created := 0
	for i := range students {
		code := students[i].StudentCode

		var linked int64
		if err := db.Model(&authModel.UserModel{}).
			Where("user_student_code = ?", code).
			Count(&linked).Error; err != nil {
			return err
		}
		if linked > 0 {
			continue
		}

		username := uniqueUsername(buildUsername(students[i].StudentName, code), taken)
		hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		studentCode := code
		if err := db.Create(&authModel.UserModel{
			UserUsername:     username,
			UserPasswordHash: string(hash),
			UserRole:         constants.RoleViewer,
			UserStudentCode:  &studentCode,
		}).Error; err != nil {
			return err
		}
		taken[username] = struct{}{}
		created++
	}

	log.Printf("[SEED] %d viewer accounts created (%d students total)", created, len(students))
	return nil
}

func seedAdmin(db *gorm.DB) error {
	username := envOr("SEED_ADMIN_USERNAME", defaultAdminUsername)

	var count int64
	if err := db.Model(&authModel.UserModel{}).
		Where("user_username = ?", username).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := envOr("SEED_ADMIN_PASSWORD", defaultAdminPassword)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := db.Create(&authModel.UserModel{
		UserUsername:     username,
		UserPasswordHash: string(hash),
		UserRole:         constants.RoleAdmin,
	}).Error; err != nil {
		return err
	}
	log.Printf("[SEED] admin account %q created", username)
	return nil
}

// buildUsername joins the last word of the full name (Vietnamese given name)
// with the student code, lowercased and stripped of diacritics.
func buildUsername(fullName, studentCode string) string {
	parts := strings.Fields(strings.ToLower(removeAccents(fullName)))
	given := "user"
	if len(parts) > 0 {
		given = parts[len(parts)-1]
	}
	return given + studentCode
}

func uniqueUsername(base string, taken map[string]struct{}) string {
	username := base
	for counter := 1; ; counter++ {
		if _, ok := taken[username]; !ok {
			return username
		}
		username = fmt.Sprintf("%s%d", base, counter)
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func removeAccents(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		// NFKD leaves the Vietnamese đ/Đ untouched.
		switch r {
		case 'đ':
			r = 'd'
		case 'Đ':
			r = 'D'
		}
		b.WriteRune(r)
	}
	return b.String()
}
