package engine

import "context"

// StepID identifies a workflow or chat step.
type StepID string

const (
	StepSupervisor      StepID = "supervisor"
	StepCustomerInfo    StepID = "customer_info"
	StepProductSelector StepID = "product_selector"
	StepSpecIntake      StepID = "spec_intake"
	StepTechnicalSpec   StepID = "technical_spec"
	StepStockPricing    StepID = "stock_pricing"
	StepConfirmation    StepID = "confirmation"
	StepCreateOrder     StepID = "create_order"
	StepGenerateReceipt StepID = "generate_receipt"
	StepStoreMemory     StepID = "store_memory"
)

// Step is a single unit of work in a turn. Steps mutate the state in place
// and never return errors: a collaborator failure is recorded on the state
// (as a pending issue or a degraded result) so the dispatcher can route the
// next turn accordingly.
type Step interface {
	ID() StepID
	Run(ctx context.Context, st *State)
}
