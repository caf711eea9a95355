package expense

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensio/expensio-backend/internal/apperr"
	"github.com/expensio/expensio-backend/internal/auth"
	"github.com/expensio/expensio-backend/internal/domain"
	"github.com/expensio/expensio-backend/internal/paging"
)

// fakeStore mimics the repository's ownership semantics in memory,
// including the category check the real store runs inside its insert and
// update transactions.
type fakeStore struct {
	rows           map[uuid.UUID]*Expense
	categoryOwners map[uuid.UUID]uuid.UUID

	lastFilter Filter
	lastParams paging.Params
	listItems  []Expense
	listTotal  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:           make(map[uuid.UUID]*Expense),
		categoryOwners: make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeStore) checkCategory(ownerID, categoryID uuid.UUID) error {
	catOwner, ok := f.categoryOwners[categoryID]
	if !ok {
		return apperr.NotFoundf("category")
	}
	if catOwner != ownerID {
		return apperr.ErrOwnershipViolation
	}
	return nil
}

func (f *fakeStore) Insert(_ context.Context, e *Expense) error {
	if err := f.checkCategory(e.UserID, e.CategoryID); err != nil {
		return err
	}
	e.ID = uuid.New()
	cp := *e
	f.rows[e.ID] = &cp
	return nil
}

func (f *fakeStore) GetByIDAndOwner(_ context.Context, ownerID, id uuid.UUID) (*Expense, error) {
	e, ok := f.rows[id]
	if !ok || e.UserID != ownerID {
		return nil, apperr.NotFoundf("expense")
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) Update(_ context.Context, e *Expense) error {
	if err := f.checkCategory(e.UserID, e.CategoryID); err != nil {
		return err
	}
	existing, ok := f.rows[e.ID]
	if !ok || existing.UserID != e.UserID {
		return apperr.NotFoundf("expense")
	}
	cp := *e
	f.rows[e.ID] = &cp
	return nil
}

func (f *fakeStore) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	e, ok := f.rows[id]
	if !ok || e.UserID != ownerID {
		return apperr.NotFoundf("expense")
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeStore) List(_ context.Context, _ uuid.UUID, filter Filter, p paging.Params) ([]Expense, int64, error) {
	f.lastFilter = filter
	f.lastParams = p
	return f.listItems, f.listTotal, nil
}

func validCreate(categoryID uuid.UUID) CreateRequest {
	return CreateRequest{
		Title:       "Groceries",
		Amount:      decimal.RequireFromString("42.50"),
		ExpenseDate: "2026-02-14",
		Type:        "EXPENSE",
		CategoryID:  categoryID,
	}
}

func TestCreateStampsOwner(t *testing.T) {
	store := newFakeStore()
	p := auth.Principal{ID: uuid.New(), Role: domain.RoleUser}
	catID := uuid.New()
	store.categoryOwners[catID] = p.ID

	svc := NewService(store, 100)
	e, err := svc.Create(context.Background(), p, validCreate(catID))
	require.NoError(t, err)
	assert.Equal(t, p.ID, e.UserID)
	assert.NotEqual(t, uuid.Nil, e.ID)
}

func TestCreateAmountValidation(t *testing.T) {
	store := newFakeStore()
	p := auth.Principal{ID: uuid.New()}
	catID := uuid.New()
	store.categoryOwners[catID] = p.ID
	svc := NewService(store, 100)

	for _, amount := range []string{"0", "-5", "1.001"} {
		req := validCreate(catID)
		req.Amount = decimal.RequireFromString(amount)
		_, err := svc.Create(context.Background(), p, req)
		assert.ErrorIs(t, err, apperr.ErrValidation, "amount %s", amount)
	}

	// One cent is the smallest valid amount.
	req := validCreate(catID)
	req.Amount = decimal.RequireFromString("0.01")
	_, err := svc.Create(context.Background(), p, req)
	assert.NoError(t, err)
}

func TestCreateForeignCategoryIsOwnershipViolation(t *testing.T) {
	store := newFakeStore()
	owner := auth.Principal{ID: uuid.New()}
	other := uuid.New()
	catID := uuid.New()
	store.categoryOwners[catID] = other

	svc := NewService(store, 100)
	_, err := svc.Create(context.Background(), owner, validCreate(catID))
	assert.ErrorIs(t, err, apperr.ErrOwnershipViolation)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateMissingCategoryIsNotFound(t *testing.T) {
	store := newFakeStore()
	p := auth.Principal{ID: uuid.New()}

	svc := NewService(store, 100)
	_, err := svc.Create(context.Background(), p, validCreate(uuid.New()))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateRecurrenceRules(t *testing.T) {
	store := newFakeStore()
	p := auth.Principal{ID: uuid.New()}
	catID := uuid.New()
	store.categoryOwners[catID] = p.ID
	svc := NewService(store, 100)

	req := validCreate(catID)
	req.Frequency = "MONTHLY"
	_, err := svc.Create(context.Background(), p, req)
	assert.ErrorIs(t, err, apperr.ErrValidation, "frequency without flag")

	req = validCreate(catID)
	req.IsRecurring = true
	_, err = svc.Create(context.Background(), p, req)
	assert.ErrorIs(t, err, apperr.ErrValidation, "flag without frequency")

	req = validCreate(catID)
	req.IsRecurring = true
	req.Frequency = "monthly"
	e, err := svc.Create(context.Background(), p, req)
	require.NoError(t, err)
	require.NotNil(t, e.Frequency)
	assert.Equal(t, domain.FreqMonthly, *e.Frequency)
}

func TestCreateRejectsBadEnums(t *testing.T) {
	store := newFakeStore()
	p := auth.Principal{ID: uuid.New()}
	catID := uuid.New()
	store.categoryOwners[catID] = p.ID
	svc := NewService(store, 100)

	req := validCreate(catID)
	req.Type = "TRANSFER"
	_, err := svc.Create(context.Background(), p, req)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	req = validCreate(catID)
	req.PaymentMethod = "IOU"
	_, err = svc.Create(context.Background(), p, req)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCrossUserAccessIsNotFound(t *testing.T) {
	store := newFakeStore()
	alice := auth.Principal{ID: uuid.New()}
	bob := auth.Principal{ID: uuid.New()}
	catID := uuid.New()
	store.categoryOwners[catID] = alice.ID
	svc := NewService(store, 100)

	e, err := svc.Create(context.Background(), alice, validCreate(catID))
	require.NoError(t, err)

	// Bob knows the exact id and still cannot see, change or delete it.
	_, err = svc.Get(context.Background(), bob, e.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	title := "hijacked"
	_, err = svc.Update(context.Background(), bob, e.ID, Patch{Title: &title})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.Delete(context.Background(), bob, e.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// Alice still has the record untouched.
	got, err := svc.Get(context.Background(), alice, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
}

func TestUpdatePatchSemantics(t *testing.T) {
	store := newFakeStore()
	p := auth.Principal{ID: uuid.New()}
	catID := uuid.New()
	store.categoryOwners[catID] = p.ID
	svc := NewService(store, 100)

	req := validCreate(catID)
	req.Description = "weekly shop"
	req.Notes = "paid in cash"
	e, err := svc.Create(context.Background(), p, req)
	require.NoError(t, err)

	amount := decimal.RequireFromString("99.99")
	updated, err := svc.Update(context.Background(), p, e.ID, Patch{Amount: &amount})
	require.NoError(t, err)

	// Only the patched field changed.
	assert.True(t, updated.Amount.Equal(amount))
	assert.Equal(t, "Groceries", updated.Title)
	assert.Equal(t, "weekly shop", updated.Description)
	assert.Equal(t, "paid in cash", updated.Notes)

	bad := decimal.Zero
	_, err = svc.Update(context.Background(), p, e.ID, Patch{Amount: &bad})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	empty := " "
	_, err = svc.Update(context.Background(), p, e.ID, Patch{Title: &empty})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUpdateReassignToForeignCategory(t *testing.T) {
	store := newFakeStore()
	p := auth.Principal{ID: uuid.New()}
	mine := uuid.New()
	theirs := uuid.New()
	store.categoryOwners[mine] = p.ID
	store.categoryOwners[theirs] = uuid.New()
	svc := NewService(store, 100)

	e, err := svc.Create(context.Background(), p, validCreate(mine))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), p, e.ID, Patch{CategoryID: &theirs})
	assert.ErrorIs(t, err, apperr.ErrOwnershipViolation)
}

func TestListNormalizesPaging(t *testing.T) {
	store := newFakeStore()
	store.listTotal = 25
	store.listItems = make([]Expense, 20)
	p := auth.Principal{ID: uuid.New()}
	svc := NewService(store, 100)

	page, err := svc.List(context.Background(), p, Filter{}, paging.Params{Page: 0, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 20)

	// Oversized page-size requests are clamped before reaching the store.
	_, err = svc.List(context.Background(), p, Filter{}, paging.Params{Size: 100000})
	require.NoError(t, err)
	assert.Equal(t, 100, store.lastParams.Size)
}

func TestUpdateClearingRecurrenceDropsFrequency(t *testing.T) {
	store := newFakeStore()
	p := auth.Principal{ID: uuid.New()}
	catID := uuid.New()
	store.categoryOwners[catID] = p.ID
	svc := NewService(store, 100)

	req := validCreate(catID)
	req.IsRecurring = true
	req.Frequency = "WEEKLY"
	e, err := svc.Create(context.Background(), p, req)
	require.NoError(t, err)

	off := false
	updated, err := svc.Update(context.Background(), p, e.ID, Patch{IsRecurring: &off})
	require.NoError(t, err)
	assert.False(t, updated.IsRecurring)
	assert.Nil(t, updated.Frequency)
}

func TestUpdateEnablingRecurrenceNeedsFrequency(t *testing.T) {
	store := newFakeStore()
	p := auth.Principal{ID: uuid.New()}
	catID := uuid.New()
	store.categoryOwners[catID] = p.ID
	svc := NewService(store, 100)

	e, err := svc.Create(context.Background(), p, validCreate(catID))
	require.NoError(t, err)

	// Turning the flag on with no frequency stored or supplied must not
	// persist a recurring record without a schedule.
	on := true
	_, err = svc.Update(context.Background(), p, e.ID, Patch{IsRecurring: &on})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	got, err := svc.Get(context.Background(), p, e.ID)
	require.NoError(t, err)
	assert.False(t, got.IsRecurring)

	// Supplying both in the same patch succeeds.
	freq := "YEARLY"
	updated, err := svc.Update(context.Background(), p, e.ID, Patch{IsRecurring: &on, Frequency: &freq})
	require.NoError(t, err)
	assert.True(t, updated.IsRecurring)
	require.NotNil(t, updated.Frequency)
	assert.Equal(t, domain.FreqYearly, *updated.Frequency)
}

func TestCreateRequiresDateAndTitle(t *testing.T) {
	store := newFakeStore()
	p := auth.Principal{ID: uuid.New()}
	catID := uuid.New()
	store.categoryOwners[catID] = p.ID
	svc := NewService(store, 100)

	req := validCreate(catID)
	req.Title = "  "
	_, err := svc.Create(context.Background(), p, req)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	req = validCreate(catID)
	req.ExpenseDate = "14/02/2026"
	_, err = svc.Create(context.Background(), p, req)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	req = validCreate(catID)
	req.CategoryID = uuid.Nil
	_, err = svc.Create(context.Background(), p, req)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
