package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/mitienda/storefront-backend/pkg/db/models"
	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// FixtureProducts returns the demo catalog used by dev environments and
// tests. IDs are generated fresh on each call.
func FixtureProducts() []models.Product {
	mk := func(name, description, brand, category, price string, stock int, rx bool) models.Product {
		return models.Product{
			ID:                   uuid.New(),
			Name:                 name,
			Description:          description,
			Brand:                brand,
			Category:             category,
			Price:                decimal.RequireFromString(price),
			Stock:                stock,
			RequiresPrescription: rx,
			Image:                "/placeholder.svg",
		}
	}

	return []models.Product{
		mk("Paracetamol 500mg", "Analgésico y antipirético para el alivio del dolor y la fiebre", "Genérico", "Analgésicos", "12.50", 100, false),
		mk("Ibuprofeno 400mg", "Antiinflamatorio no esteroideo para dolor e inflamación", "Advil", "Antiinflamatorios", "18.75", 75, false),
		mk("Amoxicilina 500mg", "Antibiótico de amplio espectro", "Amoxil", "Antibióticos", "45.00", 50, true),
		mk("Vitamina C 1000mg", "Suplemento vitamínico para fortalecer el sistema inmunológico", "Redoxon", "Vitaminas", "25.90", 120, false),
		mk("Omeprazol 20mg", "Inhibidor de la bomba de protones para problemas gástricos", "Prilosec", "Gastroenterología", "32.00", 60, false),
		mk("Loratadina 10mg", "Antihistamínico para alergias", "Claritin", "Antihistamínicos", "15.50", 80, false),
	}
}

// SeedFixtures inserts the demo catalog when the products table is
// empty. It is a no-op on populated databases so restarts never
// duplicate rows.
func SeedFixtures(ctx context.Context, repo Repository) (int, error) {
	count, err := repo.CountProducts(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting products for seed")
	}
	if count > 0 {
		return 0, nil
	}

	fixtures := FixtureProducts()
	for i := range fixtures {
		if _, err := repo.CreateProduct(ctx, &fixtures[i]); err != nil {
			return i, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seeding fixture product")
		}
	}
	return len(fixtures), nil
}
