package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/portalsync/internal/models"
)

const (
	MaxStudioNameLen        = 120
	MaxStudioLocationLen    = 120
	MaxStudioDescriptionLen = 4000
)

// ValidateStudioInput проверяет тело создания (create=true) или обновления студии
func ValidateStudioInput(in models.StudioInput, create bool) error {
	if create && strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("studio name is required")
	}
	if !create && in.Name == "" && in.Location == "" && in.Description == "" {
		return fmt.Errorf("nothing to update")
	}
	if utf8.RuneCountInString(in.Name) > MaxStudioNameLen {
		return fmt.Errorf("studio name must not exceed %d characters", MaxStudioNameLen)
	}
	if utf8.RuneCountInString(in.Location) > MaxStudioLocationLen {
		return fmt.Errorf("studio location must not exceed %d characters", MaxStudioLocationLen)
	}
	if utf8.RuneCountInString(in.Description) > MaxStudioDescriptionLen {
		return fmt.Errorf("studio description must not exceed %d characters", MaxStudioDescriptionLen)
	}
	return nil
}
