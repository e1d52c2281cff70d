package comma

type order struct {
	ID    int
	Total float64
	Items []*item
}

func (o *order) Attribute(name string) (any, bool) {
	switch name {
	case "id":
		return o.ID, true
	case "total":
		return o.Total, true
	case "items":
		return o.Items, true
	}
	return nil, false
}

type item struct {
	SKU string
}

func (i *item) Attribute(name string) (any, bool) {
	if name == "sku" {
		return i.SKU, true
	}
	return nil, false
}

type address struct {
	Street string
	City   string
}

func (a *address) Attribute(name string) (any, bool) {
	switch name {
	case "street":
		return a.Street, true
	case "city":
		return a.City, true
	}
	return nil, false
}

type customer struct {
	Name    string
	Email   string
	Address *address
	Orders  []*order
	Tags    []string
}

func (c *customer) Attribute(name string) (any, bool) {
	switch name {
	case "name":
		return c.Name, true
	case "email":
		return c.Email, true
	case "address":
		return c.Address, true
	case "orders":
		return c.Orders, true
	case "tags":
		return c.Tags, true
	}
	return nil, false
}

// premiumCustomer is linked to customer as parent type in tests.
type premiumCustomer struct {
	customer
	Level string
}

func (p *premiumCustomer) Attribute(name string) (any, bool) {
	if name == "level" {
		return p.Level, true
	}
	return p.customer.Attribute(name)
}

func newCustomer() *customer {
	return &customer{
		Name:    "Erik",
		Email:   "erik@example.com",
		Address: &address{Street: "Main St 1", City: "Vienna"},
		Orders: []*order{
			{ID: 1, Total: 9.5, Items: []*item{{SKU: "A"}, {SKU: "B"}}},
			{ID: 2, Total: 20},
			{ID: 3, Total: 0.25, Items: []*item{{SKU: "C"}}},
		},
	}
}
