package catalog

import "strings"

type MenuLink struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Href  string `json:"href"`
}

type MenuItem struct {
	Title   string     `json:"title"`
	Slug    string     `json:"slug"`
	Href    string     `json:"href"`
	Submenu []MenuLink `json:"submenu"`
}

var menu = []struct {
	title   string
	submenu []string
}{
	{"Women", []string{"New Arrivals", "Clothing", "Shoes", "Accessories", "Sale"}},
	{"Men", []string{"New Arrivals", "Clothing", "Shoes", "Accessories", "Sale"}},
	{"Kids", []string{"Girls", "Boys", "Baby", "Sale"}},
}

// Slug lower-cases a title and joins its words with dashes.
func Slug(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "-")
}

func Menu() []MenuItem {
	ret := make([]MenuItem, 0, len(menu))
	for _, m := range menu {
		slug := Slug(m.title)
		item := MenuItem{
			Title:   m.title,
			Slug:    slug,
			Href:    "/category/" + slug,
			Submenu: make([]MenuLink, 0, len(m.submenu)),
		}
		for _, sub := range m.submenu {
			subSlug := Slug(sub)
			item.Submenu = append(item.Submenu, MenuLink{
				Title: sub,
				Slug:  subSlug,
				Href:  item.Href + "/" + subSlug,
			})
		}
		ret = append(ret, item)
	}
	return ret
}
