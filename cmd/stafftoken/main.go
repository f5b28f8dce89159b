// Command stafftoken issues a staff access token for a shop device such as the
// front-desk tablet or the workroom board. The token is signed with the API's
// JWT_SECRET and expires after JWT_EXPIRY_HOURS.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/config"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/logger"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/utils"
)

func main() {
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	staffID := flag.String("id", "", "staff id (uuid)")
	name := flag.String("name", "", "staff display name")
	role := flag.String("role", utils.RoleTailor, "staff role: owner, manager or tailor")
	flag.Parse()

	cfg := config.Load()
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	token, err := issue(jwtManager, *staffID, *name, *role)
	if err != nil {
		logger.L().Fatal("Failed to issue staff token", zap.Error(err))
	}
	fmt.Println(token)
}

func issue(jwtManager *utils.JWTManager, rawID, name, role string) (string, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return "", fmt.Errorf("invalid staff id %q: %w", rawID, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("staff name is required")
	}
	if !utils.IsValidRole(role) {
		return "", fmt.Errorf("unknown role %q", role)
	}
	return jwtManager.GenerateAccessToken(id, name, role)
}
