package domain

import "time"

// RootParent is the query value that selects top-level categories.
const RootParent = "root"

// SocialLinks are the public contact handles shown alongside the catalog.
type SocialLinks struct {
	WhatsApp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
	Telegram  string `json:"telegram"`
	YouTube   string `json:"youtube"`
	Pinterest string `json:"pinterest"`
}

// Admin is the single administrator account of a deployment.
type Admin struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	SocialLinks
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileUpdate carries a partial social-link update; nil fields are left as is.
type ProfileUpdate struct {
	WhatsApp  *string `json:"whatsapp"`
	Instagram *string `json:"instagram"`
	Telegram  *string `json:"telegram"`
	YouTube   *string `json:"youtube"`
	Pinterest *string `json:"pinterest"`
}

// Apply returns links with every non-nil field of u copied over.
func (u ProfileUpdate) Apply(links SocialLinks) SocialLinks {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&links.WhatsApp, u.WhatsApp)
	set(&links.Instagram, u.Instagram)
	set(&links.Telegram, u.Telegram)
	set(&links.YouTube, u.YouTube)
	set(&links.Pinterest, u.Pinterest)
	return links
}

type Category struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Icon             string    `json:"icon"`
	ParentID         *int64    `json:"parentId"`
	SubCategoryCount int       `json:"subCategoryCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// IsRoot reports whether c has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

type Image struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	CategoryID    int64     `json:"categoryId"`
	SubcategoryID *int64    `json:"subcategoryId,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	Views         int64     `json:"views"`
	Code          string    `json:"code"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ImageFilter selects images by exact category and/or subcategory match.
// A nil field does not constrain the result.
type ImageFilter struct {
	CategoryID    *int64
	SubcategoryID *int64
}

// Stats are view totals of images grouped by when the image was created.
type Stats struct {
	TotalImages    int64 `json:"totalImages"`
	TodayViews     int64 `json:"todayViews"`
	YesterdayViews int64 `json:"yesterdayViews"`
	WeekViews      int64 `json:"weekViews"`
	MonthViews     int64 `json:"monthViews"`
}
