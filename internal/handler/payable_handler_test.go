package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/dafibh/paydue/paydue-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayableHandler(now time.Time) (*PayableHandler, *testutil.MockPayableRepository) {
	payableRepo := testutil.NewMockPayableRepository()
	paymentRepo := testutil.NewMockPaymentRepository(payableRepo)
	h := NewPayableHandler(service.NewPayableService(payableRepo, paymentRepo))
	h.now = fixedClock(now)
	return h, payableRepo
}

func seedPayable(repo *testutil.MockPayableRepository, userID uuid.UUID, title string, typ domain.PayableType, emiDay int, emi, remaining int64, payee string) *domain.Payable {
	p := &domain.Payable{
		UserID:          userID,
		Title:           title,
		Type:            typ,
		TotalAmount:     decimal.NewFromInt(remaining + emi),
		RemainingAmount: decimal.NewFromInt(remaining),
		EmiAmount:       decimal.NewFromInt(emi),
		EmiDay:          emiDay,
		Payee:           payee,
		PayType:         domain.PayTypeManual,
		Status:          domain.PayableStatusActive,
	}
	repo.AddPayable(p)
	return p
}

func TestCreatePayable_Success(t *testing.T) {
	h, _ := newPayableHandler(date(2025, time.May, 20))
	userID := uuid.New()

	body := `{"title":"Phone EMI","type":"emi","totalAmount":"50000","emiAmount":"5000","emiDay":15,"payee":"HDFC"}`
	c, rec := newContext(http.MethodPost, "/api/v1/payables", body)
	setupAuthContext(c, userID, "priya@example.com")

	require.NoError(t, h.CreatePayable(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeJSON[PayableResponse](t, rec)
	assert.Equal(t, "Phone EMI", resp.Title)
	assert.Equal(t, "EMI", resp.TypeLabel)
	assert.Equal(t, "50000", resp.RemainingAmount, "remaining defaults to total")
	assert.Equal(t, "manual", resp.PayType)
	assert.Equal(t, "2025-06-15", resp.NextDueDate)
	assert.Equal(t, "₹5,000", resp.Formatted.EmiAmount)
	assert.Equal(t, "₹50,000", resp.Formatted.RemainingAmount)
}

func TestCreatePayable_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing title", `{"type":"emi","totalAmount":"100","emiAmount":"10","emiDay":1}`, "title"},
		{"unknown type", `{"title":"X","type":"mortgage","totalAmount":"100","emiAmount":"10","emiDay":1}`, "type"},
		{"bad amount", `{"title":"X","type":"emi","totalAmount":"lots","emiAmount":"10","emiDay":1}`, "totalAmount"},
		{"zero emi", `{"title":"X","type":"emi","totalAmount":"100","emiAmount":"0","emiDay":1}`, "emiAmount"},
		{"fractional emi", `{"title":"X","type":"bill","totalAmount":"1200","emiAmount":"1199.6","emiDay":1}`, "emiAmount"},
		{"emi day out of range", `{"title":"X","type":"emi","totalAmount":"100","emiAmount":"10","emiDay":32}`, "emiDay"},
		{"bad date", `{"title":"X","type":"emi","totalAmount":"100","emiAmount":"10","emiDay":1,"startDate":"01/05/2025"}`, "startDate"},
		{"end before start", `{"title":"X","type":"emi","totalAmount":"100","emiAmount":"10","emiDay":1,"startDate":"2025-05-01","endDate":"2025-04-01"}`, "endDate"},
		{"bad pay type", `{"title":"X","type":"emi","totalAmount":"100","emiAmount":"10","emiDay":1,"payType":"cash"}`, "payType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo := newPayableHandler(date(2025, time.May, 20))
			c, rec := newContext(http.MethodPost, "/api/v1/payables", tt.body)
			setupAuthContext(c, uuid.New(), "")

			require.NoError(t, h.CreatePayable(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			problem := decodeJSON[ProblemDetails](t, rec)
			assert.Contains(t, fieldNames(problem), tt.field)
			assert.Empty(t, repo.Payables)
		})
	}
}

func TestCreatePayable_FractionalInterestAccepted(t *testing.T) {
	h, repo := newPayableHandler(date(2025, time.May, 20))
	c, rec := newContext(http.MethodPost, "/api/v1/payables", `{"title":"Card","type":"credit_card","totalAmount":"20000","emiAmount":"4000","emiDay":3,"interestPerMonth":"3.5"}`)
	setupAuthContext(c, uuid.New(), "")

	require.NoError(t, h.CreatePayable(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, repo.Payables, 1)
	for _, p := range repo.Payables {
		assert.Equal(t, "3.5", p.InterestPerMonth.String())
	}
}

func TestCreatePayable_UnknownTypeListsChoices(t *testing.T) {
	h, _ := newPayableHandler(date(2025, time.May, 20))
	c, rec := newContext(http.MethodPost, "/api/v1/payables", `{"title":"X","type":"mortgage","totalAmount":"100","emiAmount":"10","emiDay":1}`)
	setupAuthContext(c, uuid.New(), "")

	require.NoError(t, h.CreatePayable(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	problem := decodeJSON[ProblemDetails](t, rec)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "Type must be one of: EMI (emi), Loan On Interest (loan), Credit Card (credit_card), Pay Later (pay_later), Bill (bill), Rent (rent)", problem.Errors[0].Message)
}

func TestCreatePayable_Unauthorized(t *testing.T) {
	h, _ := newPayableHandler(date(2025, time.May, 20))
	c, rec := newContext(http.MethodPost, "/api/v1/payables", `{}`)

	require.NoError(t, h.CreatePayable(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetPayables_SortAndFilter(t *testing.T) {
	h, repo := newPayableHandler(date(2025, time.May, 20))
	userID := uuid.New()
	seedPayable(repo, userID, "Phone EMI", domain.PayableTypeEMI, 15, 5000, 45000, "HDFC")
	seedPayable(repo, userID, "Electricity", domain.PayableTypeBill, 5, 1200, 0, "BESCOM")
	seedPayable(repo, userID, "Car Loan", domain.PayableTypeEMI, 10, 12000, 300000, "HDFC")
	seedPayable(repo, uuid.New(), "Someone else", domain.PayableTypeEMI, 1, 1, 1, "HDFC")

	c, rec := newContext(http.MethodGet, "/api/v1/payables?sort=remaining_amount", "")
	setupAuthContext(c, userID, "")
	require.NoError(t, h.GetPayables(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[PayableListResponse](t, rec)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, []string{"Electricity", "Phone EMI", "Car Loan"}, titles(resp.Items))
	assert.Equal(t, 1, resp.Page)
	assert.False(t, resp.HasMore)

	c, rec = newContext(http.MethodGet, "/api/v1/payables?payee=HDFC", "")
	setupAuthContext(c, userID, "")
	require.NoError(t, h.GetPayables(c))

	resp = decodeJSON[PayableListResponse](t, rec)
	assert.Equal(t, []string{"Car Loan", "Phone EMI"}, titles(resp.Items))
}

func TestGetPayables_Pagination(t *testing.T) {
	h, repo := newPayableHandler(date(2025, time.May, 20))
	userID := uuid.New()
	for i := 0; i < domain.PayablePageSize+5; i++ {
		seedPayable(repo, userID, "Card", domain.PayableTypeCreditCard, 1+i%28, 100, 1000, "")
	}

	c, rec := newContext(http.MethodGet, "/api/v1/payables", "")
	setupAuthContext(c, userID, "")
	require.NoError(t, h.GetPayables(c))
	resp := decodeJSON[PayableListResponse](t, rec)
	assert.Len(t, resp.Items, domain.PayablePageSize)
	assert.True(t, resp.HasMore)

	c, rec = newContext(http.MethodGet, "/api/v1/payables?page=2", "")
	setupAuthContext(c, userID, "")
	require.NoError(t, h.GetPayables(c))
	resp = decodeJSON[PayableListResponse](t, rec)
	assert.Len(t, resp.Items, 5)
	assert.Equal(t, 2, resp.Page)
	assert.False(t, resp.HasMore)
}

func TestGetPayables_InvalidQuery(t *testing.T) {
	for _, target := range []string{"/api/v1/payables?sort=title", "/api/v1/payables?page=0", "/api/v1/payables?page=abc"} {
		h, _ := newPayableHandler(date(2025, time.May, 20))
		c, rec := newContext(http.MethodGet, target, "")
		setupAuthContext(c, uuid.New(), "")

		require.NoError(t, h.GetPayables(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetPayees(t *testing.T) {
	h, repo := newPayableHandler(date(2025, time.May, 20))
	userID := uuid.New()
	seedPayable(repo, userID, "Phone EMI", domain.PayableTypeEMI, 15, 5000, 45000, "HDFC")
	seedPayable(repo, userID, "Electricity", domain.PayableTypeBill, 5, 1200, 0, "BESCOM")
	seedPayable(repo, userID, "Water", domain.PayableTypeBill, 25, 800, 0, "")

	c, rec := newContext(http.MethodGet, "/api/v1/payables/payees", "")
	setupAuthContext(c, userID, "")
	require.NoError(t, h.GetPayees(c))

	assert.Equal(t, []string{"BESCOM", "HDFC"}, decodeJSON[[]string](t, rec))
}

func TestGetPayable_NotFoundAndInvalidID(t *testing.T) {
	h, repo := newPayableHandler(date(2025, time.May, 20))
	owner := uuid.New()
	p := seedPayable(repo, owner, "Phone EMI", domain.PayableTypeEMI, 15, 5000, 45000, "HDFC")

	c, rec := newContext(http.MethodGet, "/", "")
	setupAuthContext(c, uuid.New(), "")
	setParams(c, []string{"id"}, p.ID.String())
	require.NoError(t, h.GetPayable(c))
	assert.Equal(t, http.StatusNotFound, rec.Code, "other users cannot read the payable")

	c, rec = newContext(http.MethodGet, "/", "")
	setupAuthContext(c, owner, "")
	setParams(c, []string{"id"}, "not-a-uuid")
	require.NoError(t, h.GetPayable(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(http.MethodGet, "/", "")
	setupAuthContext(c, owner, "")
	setParams(c, []string{"id"}, p.ID.String())
	require.NoError(t, h.GetPayable(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdatePayable_KeepsRemainingWhenOmitted(t *testing.T) {
	h, repo := newPayableHandler(date(2025, time.May, 20))
	userID := uuid.New()
	p := seedPayable(repo, userID, "Phone EMI", domain.PayableTypeEMI, 15, 5000, 45000, "HDFC")

	body := `{"title":"Phone EMI (Pixel)","type":"emi","totalAmount":"50000","emiAmount":"5000","emiDay":20,"payee":"ICICI"}`
	c, rec := newContext(http.MethodPut, "/", body)
	setupAuthContext(c, userID, "")
	setParams(c, []string{"id"}, p.ID.String())

	require.NoError(t, h.UpdatePayable(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[PayableResponse](t, rec)
	assert.Equal(t, "Phone EMI (Pixel)", resp.Title)
	assert.Equal(t, "45000", resp.RemainingAmount)
	assert.Equal(t, 20, resp.EmiDay)
	assert.Equal(t, "2025-05-20", resp.NextDueDate)
	assert.Equal(t, "ICICI", resp.Payee)
}

func TestClosePayable_Twice(t *testing.T) {
	h, repo := newPayableHandler(date(2025, time.May, 20))
	userID := uuid.New()
	p := seedPayable(repo, userID, "Phone EMI", domain.PayableTypeEMI, 15, 5000, 0, "HDFC")

	c, rec := newContext(http.MethodPost, "/", "")
	setupAuthContext(c, userID, "")
	setParams(c, []string{"id"}, p.ID.String())
	require.NoError(t, h.ClosePayable(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[PayableResponse](t, rec)
	assert.True(t, resp.IsClosed)
	assert.Equal(t, domain.PayableStatusClosed, resp.Status)
	assert.NotNil(t, resp.ClosedAt)

	c, rec = newContext(http.MethodPost, "/", "")
	setupAuthContext(c, userID, "")
	setParams(c, []string{"id"}, p.ID.String())
	require.NoError(t, h.ClosePayable(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func titles(items []PayableResponse) []string {
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = item.Title
	}
	return result
}
