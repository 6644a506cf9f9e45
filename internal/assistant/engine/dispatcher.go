package engine

import "github.com/google/uuid"

// Dispatch routes a workflow turn to exactly one step based on the shape of
// the state. It is a pure function: calling it twice on the same state yields
// the same step, and it never mutates the state.
//
// The order of checks is load-bearing. A pending issue always wins so
// recovery happens before any forward progress, and the confirmation gate
// sits strictly before order creation so an unconfirmed session can never
// reach the fulfillment chain.
func Dispatch(st *State) StepID {
	switch {
	case st.PendingIssue != "":
		return StepSupervisor
	case st.Customer == nil:
		return StepCustomerInfo
	case st.SelectedProduct == nil:
		return StepProductSelector
	case !st.HumanSpec.Complete():
		return StepSpecIntake
	case st.TechnicalSpec == nil:
		return StepTechnicalSpec
	case st.PricingSummary == nil || st.StockStatus == nil:
		return StepStockPricing
	case !st.ConfirmedByUser:
		return StepConfirmation
	case st.OrderID == uuid.Nil:
		return StepCreateOrder
	case st.ReceiptReference == "":
		return StepGenerateReceipt
	default:
		return StepStoreMemory
	}
}

// fulfillmentChain is the ordered atomic tail of the workflow. Once the
// dispatcher routes into it, the engine runs the remaining links in a single
// turn so an order is never left without a receipt and a memory record.
var fulfillmentChain = []StepID{StepCreateOrder, StepGenerateReceipt, StepStoreMemory}

// inFulfillmentChain reports whether the step belongs to the atomic tail.
func inFulfillmentChain(id StepID) bool {
	for _, link := range fulfillmentChain {
		if link == id {
			return true
		}
	}
	return false
}
