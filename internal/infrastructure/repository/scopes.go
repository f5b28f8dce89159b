package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	domainRepo "github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
)

// OrderFilterScope applies the board filters. Archived orders are hidden
// unless asked for explicitly or filtered on.
func OrderFilterScope(params *domainRepo.OrderFilterParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			return db.Where("status <> ?", enum.OrderStatusArchived)
		}
		if params.Status != nil {
			db = db.Where("status = ?", *params.Status)
		} else if !params.IncludeArchived {
			db = db.Where("status <> ?", enum.OrderStatusArchived)
		}
		if params.Type != nil {
			db = db.Where("type = ?", *params.Type)
		}
		if params.Rush != nil {
			db = db.Where("rush = ?", *params.Rush)
		}
		if params.ClientID != nil {
			db = db.Where("client_id = ?", *params.ClientID)
		}
		return db
	}
}

// BoardOrderScope sorts rush work first, then by due date, then oldest first
func BoardOrderScope(db *gorm.DB) *gorm.DB {
	return db.Order("rush DESC").Order("due_date ASC NULLS LAST").Order("created_at ASC")
}

// ClientSearchScope matches a free-text search on name, phone or email
func ClientSearchScope(search string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" {
			return db
		}
		like := "%" + search + "%"
		return db.Where("first_name ILIKE ? OR last_name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", like, like, like, like)
	}
}
