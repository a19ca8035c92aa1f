package testutil

import (
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"

	"github.com/shopspring/decimal"
)

// SampleUser returns a buyer account for tests
func SampleUser() *domain.User {
	return &domain.User{
		ID:        42,
		Username:  "amina",
		Email:     "amina@example.com",
		FirstName: "Amina",
		LastName:  "Ndiaye",
		Profile: &domain.Profile{
			Phone:  "690112233",
			City:   "Douala",
			Region: "Littoral",
		},
	}
}

// SampleTokenPair returns an opaque token pair for tests
func SampleTokenPair() *domain.TokenPair {
	return &domain.TokenPair{
		Access:  "access-token",
		Refresh: "refresh-token",
	}
}

// SampleCart returns the two-line cart used across checkout tests:
// [{price 10, qty 2}, {price 5, qty 1}] so the subtotal is 25.
func SampleCart() *domain.Cart {
	return &domain.Cart{
		Items: []domain.CartItem{
			{
				ProductID: 1,
				Name:      "Plantains (bunch)",
				UnitPrice: decimal.NewFromInt(10),
				Quantity:  2,
			},
			{
				ProductID: 2,
				Name:      "Tomatoes (kg)",
				UnitPrice: decimal.NewFromInt(5),
				Quantity:  1,
			},
		},
	}
}

// SampleShipping returns a filled shipping form
func SampleShipping() domain.ShippingDetails {
	return domain.ShippingDetails{
		FullName: "Amina Ndiaye",
		Phone:    "690112233",
		Address:  "Rue 12, Bonapriso",
		City:     "Douala",
		Region:   "Littoral",
	}
}
