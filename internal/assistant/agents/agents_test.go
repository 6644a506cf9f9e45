package agents

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

var testLog = logger.New("development")

var errGenDown = errors.New("model unavailable")

// fakeGen answers every generation call through fn.
type fakeGen struct {
	fn    func(req GenerateRequest) (string, error)
	calls int
}

func (g *fakeGen) Name() string { return "fake-llm" }

func (g *fakeGen) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	g.calls++
	if g.fn == nil {
		return "", errGenDown
	}
	return g.fn(req)
}

func genReturning(response string) *fakeGen {
	return &fakeGen{fn: func(GenerateRequest) (string, error) { return response, nil }}
}

func genFailing() *fakeGen {
	return &fakeGen{}
}

type fakeCatalog struct {
	hits       []CatalogProduct
	searchErr  error
	stock      Stock
	stockErr   error
	reserveErr error

	searchedFor string
	reserved    int
}

func (c *fakeCatalog) Search(ctx context.Context, query string, limit int) ([]CatalogProduct, error) {
	c.searchedFor = query
	return c.hits, c.searchErr
}

func (c *fakeCatalog) Stock(ctx context.Context, productID uuid.UUID) (Stock, error) {
	return c.stock, c.stockErr
}

func (c *fakeCatalog) Reserve(ctx context.Context, productID uuid.UUID, quantity int) error {
	c.reserved += quantity
	return c.reserveErr
}

type fakeCustomers struct {
	registered RegisteredCustomer
	err        error
}

func (c *fakeCustomers) Register(ctx context.Context, details CustomerDetails) (RegisteredCustomer, error) {
	if c.err != nil {
		return RegisteredCustomer{}, c.err
	}
	if c.registered.ID == uuid.Nil {
		c.registered = RegisteredCustomer{ID: uuid.New(), Name: details.Name, Phone: details.Phone}
	}
	return c.registered, nil
}

type fakeOrders struct {
	result OrderResult
	err    error
	placed []OrderRequest
}

func (o *fakeOrders) Place(ctx context.Context, req OrderRequest) (OrderResult, error) {
	o.placed = append(o.placed, req)
	return o.result, o.err
}

type fakeReceipts struct {
	result    ReceiptResult
	generated []ReceiptRequest
}

func (r *fakeReceipts) Generate(ctx context.Context, req ReceiptRequest) ReceiptResult {
	r.generated = append(r.generated, req)
	return r.result
}

type fakeMemories struct {
	saved   []MemoryRecord
	entries []string
	history []string
	saveErr error
}

func (m *fakeMemories) Save(ctx context.Context, record MemoryRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, record)
	return nil
}

func (m *fakeMemories) Retrieve(ctx context.Context, sessionID uuid.UUID, query string, limit int) []string {
	return m.entries
}

func (m *fakeMemories) History(ctx context.Context, customerID uuid.UUID, limit int) []string {
	return m.history
}

type fakeNotifier struct {
	sent []OrderNotification
	err  error
}

func (n *fakeNotifier) SendOrderConfirmation(ctx context.Context, note OrderNotification) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, note)
	return nil
}

// workflowState builds a state that has progressed through the given stages.
func workflowState() *engine.State {
	st := engine.NewState(uuid.New())
	st.Mode = engine.ModeWorkflow
	return st
}

func stateWithProduct() *engine.State {
	st := workflowState()
	st.Customer = &engine.Customer{ID: uuid.New(), Name: "Ada", Phone: "+31612345678"}
	st.SelectedProduct = &engine.Product{
		ID:             uuid.New(),
		Name:           "Oak Dining Table",
		Category:       "tables",
		BasePriceCents: 89900,
	}
	st.Quantity = 1
	return st
}

func testCustomer() *engine.Customer {
	return &engine.Customer{ID: uuid.New(), Name: "Ada", Phone: "+31612345678"}
}

func specWithQuestions() *engine.HumanSpec {
	return &engine.HumanSpec{Questions: []string{
		"What dimensions do you need?",
		"Which material and color would you prefer?",
		"Any special requirements?",
	}}
}

func stateReadyForPricing() *engine.State {
	st := stateWithProduct()
	st.SpecQuestionAsked = true
	st.HumanSpec = &engine.HumanSpec{
		RawAnswers: map[string]string{"turn_3": "180cm, oak, matte"},
		Summary:    "180cm oak table with a matte finish",
	}
	st.TechnicalSpec = &engine.TechnicalSpec{Summary: "180x90cm solid oak table, matte lacquer"}
	return st
}

func stateReadyForOrder() *engine.State {
	st := stateReadyForPricing()
	st.PricingSummary = &engine.PricingSummary{
		UnitPriceCents: 89900,
		TotalCents:     89900,
		Quantity:       1,
		Breakdown:      "Base price for solid oak.",
	}
	st.StockStatus = &engine.StockStatus{InStock: true, QuantityAvailable: 5, LeadTimeDays: 21}
	st.ConfirmationRequested = true
	st.ConfirmedByUser = true
	return st
}
