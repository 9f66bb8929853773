package frankfurter

import "github.com/Lutefd/frankfurter-service/internal/model"

// interpret picks the quote currency out of table. The API already applied the
// amount, so the value found is the answer for conversions too.
func interpret(table model.RateTable, q query) model.Result {
	value, ok := table.Lookup(q.quote)
	if !ok {
		return model.NotFoundError(q.request, nil)
	}

	if q.conversion {
		return model.ConversionResult{Amount: value, Date: table.Date}
	}
	return model.RateResult{Rate: value, Date: table.Date}
}
