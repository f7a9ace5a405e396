package businessconfig

import (
	"context"
	"errors"
	"io"
	"testing"

	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/mitienda/storefront-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "businessconfig-test", Output: io.Discard})
}

func newTestStore(t *testing.T) (*Store, *MemorySnapshotter) {
	t.Helper()

	snaps := NewMemorySnapshotter()
	store, err := NewStore(context.Background(), snaps, testLogger())
	if err != nil {
		t.Fatalf("building store: %v", err)
	}
	return store, snaps
}

func TestDefaultConfiguration(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfiguration()
	if cfg.BusinessType.ID != "pharmacy" {
		t.Fatalf("expected pharmacy default, got %q", cfg.BusinessType.ID)
	}
	if cfg.Branding.PrimaryColor != "#2563eb" {
		t.Fatalf("expected branding derived from type palette, got %q", cfg.Branding.PrimaryColor)
	}
	if cfg.Locale.Currency != "VES" || cfg.Locale.Language != "es" || cfg.Locale.Country != "VE" {
		t.Fatalf("unexpected locale: %+v", cfg.Locale)
	}

	// Enabled plus required features, disabled ones excluded.
	if !cfg.IsFeatureEnabled("prescription_required") || !cfg.IsFeatureEnabled("age_verification") {
		t.Fatal("expected default features enabled")
	}
	if cfg.IsFeatureEnabled("medical_consultation") {
		t.Fatal("expected disabled feature to stay off")
	}
}

func TestLookupBusinessType(t *testing.T) {
	t.Parallel()

	bt, err := LookupBusinessType("ELECTRONICS")
	if err != nil {
		t.Fatalf("expected case-insensitive lookup, got %v", err)
	}
	if bt.ID != "electronics" {
		t.Fatalf("expected electronics, got %q", bt.ID)
	}

	_, err = LookupBusinessType("bakery")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnknownBusinessType {
		t.Fatalf("expected unknown business type error, got %v", err)
	}
}

func TestChangeBusinessTypePreservesBusinessInfo(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	info := BusinessInfo{
		Name:    "Farmacia San Rafael",
		Email:   "hola@sanrafael.com",
		Phone:   "+58 212 5551234",
		Address: "Av. Libertador, Caracas",
	}
	if _, err := store.Update(ctx, Patch{BusinessInfo: &info}); err != nil {
		t.Fatalf("updating business info: %v", err)
	}

	cfg, err := store.ChangeBusinessType(ctx, "restaurant")
	if err != nil {
		t.Fatalf("changing type: %v", err)
	}

	if cfg.BusinessInfo != info {
		t.Fatalf("business info not preserved: %+v", cfg.BusinessInfo)
	}
	if cfg.BusinessType.ID != "restaurant" {
		t.Fatalf("expected restaurant, got %q", cfg.BusinessType.ID)
	}
	if cfg.Branding.PrimaryColor != "#ea580c" {
		t.Fatalf("branding not re-derived: %q", cfg.Branding.PrimaryColor)
	}
	if cfg.Locale.Currency != "USD" {
		t.Fatalf("currency not re-derived: %q", cfg.Locale.Currency)
	}
	if !cfg.IsFeatureEnabled("dietary_restrictions") || cfg.IsFeatureEnabled("prescription_required") {
		t.Fatalf("features not re-derived: %v", cfg.EnabledFeatures)
	}
}

func TestChangeBusinessTypeUnknownLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	if _, err := store.ChangeBusinessType(context.Background(), "bakery"); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if got := store.Get().BusinessType.ID; got != "pharmacy" {
		t.Fatalf("state changed after failed switch: %q", got)
	}
}

func TestUpdateNotifiesListenersInOrder(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	var order []int
	store.Subscribe(func(Configuration) { order = append(order, 1) })
	store.Subscribe(func(Configuration) { order = append(order, 2) })

	features := []string{"age_verification"}
	if _, err := store.Update(context.Background(), Patch{EnabledFeatures: &features}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("listeners not notified in registration order: %v", order)
	}
}

func TestStoreSurvivesRestart(t *testing.T) {
	t.Parallel()

	snaps := NewMemorySnapshotter()
	ctx := context.Background()

	store, err := NewStore(ctx, snaps, testLogger())
	if err != nil {
		t.Fatalf("building store: %v", err)
	}
	if _, err := store.ChangeBusinessType(ctx, "clothing"); err != nil {
		t.Fatalf("changing type: %v", err)
	}

	reloaded, err := NewStore(ctx, snaps, testLogger())
	if err != nil {
		t.Fatalf("rebuilding store: %v", err)
	}
	if got := reloaded.Get().BusinessType.ID; got != "clothing" {
		t.Fatalf("expected clothing after restart, got %q", got)
	}
}

func TestCorruptSnapshotFallsBackToDefault(t *testing.T) {
	t.Parallel()

	snaps := NewMemorySnapshotter()
	ctx := context.Background()
	if err := snaps.Save(ctx, []byte("{not json")); err != nil {
		t.Fatalf("seeding snapshot: %v", err)
	}

	store, err := NewStore(ctx, snaps, testLogger())
	if err != nil {
		t.Fatalf("building store: %v", err)
	}
	if got := store.Get().BusinessType.ID; got != "pharmacy" {
		t.Fatalf("expected default after corrupt snapshot, got %q", got)
	}
}

func TestUpdateWithFailingSnapshotterWarns(t *testing.T) {
	t.Parallel()

	snaps := &failingSnapshotter{}
	store, err := NewStore(context.Background(), snaps, testLogger())
	if err != nil {
		t.Fatalf("building store: %v", err)
	}

	categories := []string{"Ofertas"}
	cfg, err := store.Update(context.Background(), Patch{CustomCategories: &categories})
	if !pkgerrors.IsWarning(err) {
		t.Fatalf("expected persistence warning, got %v", err)
	}

	// The update still took effect in memory.
	if len(cfg.CustomCategories) != 1 || cfg.CustomCategories[0] != "Ofertas" {
		t.Fatalf("update lost: %v", cfg.CustomCategories)
	}
	if got := store.Get().Categories(); len(got) != 1 || got[0] != "Ofertas" {
		t.Fatalf("store state lost: %v", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.ChangeBusinessType(ctx, "electronics"); err != nil {
		t.Fatalf("changing type: %v", err)
	}
	data, err := store.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	other, _ := newTestStore(t)
	cfg, err := other.Import(ctx, data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if cfg.BusinessType.ID != "electronics" {
		t.Fatalf("expected electronics after import, got %q", cfg.BusinessType.ID)
	}

	if _, err := other.Import(ctx, []byte("nope")); err == nil {
		t.Fatal("expected error for malformed import payload")
	}
}

func TestTerminologyOverrides(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	override := Terminology{Cart: "Cesta"}
	if _, err := store.Update(context.Background(), Patch{CustomTerminology: &override}); err != nil {
		t.Fatalf("update: %v", err)
	}

	term := store.Terminology()
	if term.Cart != "Cesta" {
		t.Fatalf("override not applied: %q", term.Cart)
	}
	// Empty override fields keep the type vocabulary.
	if term.Product != "Medicamento" {
		t.Fatalf("base terminology lost: %q", term.Product)
	}
}

func TestResetDropsCustomizations(t *testing.T) {
	t.Parallel()

	store, snaps := newTestStore(t)
	ctx := context.Background()

	if _, err := store.ChangeBusinessType(ctx, "supermarket"); err != nil {
		t.Fatalf("changing type: %v", err)
	}
	cfg, err := store.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if cfg.BusinessType.ID != "pharmacy" {
		t.Fatalf("expected default after reset, got %q", cfg.BusinessType.ID)
	}

	// Reset re-persists the default snapshot.
	data, err := snaps.Load(ctx)
	if err != nil || data == nil {
		t.Fatalf("expected fresh snapshot after reset, got %v / %v", data, err)
	}
}

type failingSnapshotter struct{}

func (failingSnapshotter) Load(context.Context) ([]byte, error)  { return nil, nil }
func (failingSnapshotter) Save(context.Context, []byte) error    { return errors.New("redis down") }
func (failingSnapshotter) Clear(context.Context) error           { return errors.New("redis down") }
