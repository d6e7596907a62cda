package domain

import statedomain "github.com/servibill/servibill/internal/state/domain"

// Transition tables keyed by stable state codes. A document may only move
// along these edges; conversion is handled separately and is not a status
// transition.
var invoiceTransitions = map[statedomain.Code][]statedomain.Code{
	statedomain.CodeCreada:        {statedomain.CodeEnviada, statedomain.CodePendientePago},
	statedomain.CodeEnviada:       {statedomain.CodePagada, statedomain.CodePendientePago},
	statedomain.CodePendientePago: {statedomain.CodePagada},
	statedomain.CodePagada:        {},
}

var proformaTransitions = map[statedomain.Code][]statedomain.Code{
	statedomain.CodeCreada:   {statedomain.CodeEnviada},
	statedomain.CodeEnviada:  {statedomain.CodeAceptada},
	statedomain.CodeAceptada: {},
}

// CanTransition reports whether a document of the given kind may move
// from one state to another.
func CanTransition(kind statedomain.Kind, from, to statedomain.Code) bool {
	var table map[statedomain.Code][]statedomain.Code
	switch kind {
	case statedomain.KindFactura:
		table = invoiceTransitions
	case statedomain.KindProforma:
		table = proformaTransitions
	default:
		return false
	}

	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidCode reports whether the code names a state of the given kind.
func ValidCode(kind statedomain.Kind, code statedomain.Code) bool {
	switch kind {
	case statedomain.KindFactura:
		_, ok := invoiceTransitions[code]
		return ok
	case statedomain.KindProforma:
		_, ok := proformaTransitions[code]
		return ok
	}
	return false
}
