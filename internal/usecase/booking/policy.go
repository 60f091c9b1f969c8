package booking

import (
	"github.com/BruksfildServices01/homeservices/internal/auth"
	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

func isCustomer(b *models.Booking, c auth.Identity) bool {
	return b.UserID == c.UserID
}

func isProviderOwner(b *models.Booking, c auth.Identity) bool {
	return b.Provider != nil && b.Provider.UserID == c.UserID
}

func canView(b *models.Booking, c auth.Identity) bool {
	switch c.Role {
	case role.Admin:
		return true
	case role.Customer, role.Provider:
		return isCustomer(b, c) || isProviderOwner(b, c)
	}
	return false
}

func canCancel(b *models.Booking, c auth.Identity) bool {
	switch c.Role {
	case role.Admin:
		return true
	case role.Customer, role.Provider:
		return isCustomer(b, c)
	}
	return false
}

func canUpdateStatus(b *models.Booking, c auth.Identity) bool {
	switch c.Role {
	case role.Admin:
		return true
	case role.Customer, role.Provider:
		return isProviderOwner(b, c)
	}
	return false
}
