package data

func ConvertQueryResults[D interface{}, R interface{}](items QueryResults[D], thunk func(D) R) QueryResults[R] {
	if items.Items != nil {
		newItems := make([]R, len(items.Items))
		for i, rd := range items.Items {
			newItems[i] = thunk(rd)
		}
		return QueryResults[R]{
			Items: newItems,
		}
	}
	return QueryResults[R]{
		Items: make([]R, 0),
	}
}
