package types

import "maps"

type ItemList map[ProductId]struct{}

func NewItemList(ids ...ProductId) ItemList {
	ret := make(ItemList, len(ids))
	for _, id := range ids {
		ret[id] = struct{}{}
	}
	return ret
}

func (i ItemList) AddId(id ProductId) {
	i[id] = struct{}{}
}

func (i ItemList) Contains(id ProductId) bool {
	_, ok := i[id]
	return ok
}

func (i ItemList) Len() int {
	return len(i)
}

func (i ItemList) Clone() ItemList {
	return maps.Clone(i)
}

func (a ItemList) Intersect(b ItemList) {
	for id := range a {
		if _, ok := b[id]; !ok {
			delete(a, id)
		}
	}
}

func (i ItemList) Merge(other ItemList) {
	maps.Copy(i, other)
}

func (i ItemList) IntersectionLen(other ItemList) int {
	small, large := i, other
	if len(large) < len(small) {
		small, large = large, small
	}
	count := 0
	for id := range small {
		if _, ok := large[id]; ok {
			count++
		}
	}
	return count
}
