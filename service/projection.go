package service

import "cornerstore/model"

func toCashierDTO(c model.Cashier) CashierDTO {
	return CashierDTO{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName}
}

func toCategoryDTO(c model.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, CategoryName: c.CategoryName}
}

func toProductDTO(p model.Product) ProductDTO {
	out := ProductDTO{
		ID:          p.ID,
		ProductName: p.ProductName,
		Brand:       p.Brand,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
	}
	if p.Category != nil {
		cat := toCategoryDTO(*p.Category)
		out.Category = &cat
	}
	return out
}

func toOrderProductDTOs(lines []model.OrderProduct) []OrderProductDTO {
	out := make([]OrderProductDTO, 0, len(lines))
	for _, op := range lines {
		dto := OrderProductDTO{ProductID: op.ProductID, Quantity: op.Quantity}
		if op.Product != nil {
			dto.Product = toProductDTO(*op.Product)
		}
		out = append(out, dto)
	}
	return out
}

// toOrderDetails expects o.OrderProducts to be loaded with products.
func toOrderDetails(o model.Order) OrderDetailsDTO {
	od := OrderDetailsDTO{
		ID:            o.ID,
		PaidOnDate:    o.PaidOnDate,
		Paid:          o.Paid(),
		Total:         o.Total(),
		OrderProducts: toOrderProductDTOs(o.OrderProducts),
	}
	if o.Cashier != nil {
		od.Cashier = toCashierDTO(*o.Cashier)
	} else {
		od.Cashier = CashierDTO{ID: o.CashierID}
	}
	return od
}

func toCashierOrder(o model.Order) CashierOrderDTO {
	return CashierOrderDTO{
		ID:            o.ID,
		PaidOnDate:    o.PaidOnDate,
		Total:         o.Total(),
		OrderProducts: toOrderProductDTOs(o.OrderProducts),
	}
}

// attachLines distributes line items to their orders by order id.
func attachLines(orders []model.Order, lines []model.OrderProduct) {
	byOrder := make(map[int64][]model.OrderProduct, len(orders))
	for _, op := range lines {
		byOrder[op.OrderID] = append(byOrder[op.OrderID], op)
	}
	for i := range orders {
		orders[i].OrderProducts = byOrder[orders[i].ID]
	}
}

func orderIDs(orders []model.Order) []int64 {
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}
