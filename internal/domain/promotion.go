package domain

import "time"

// PromotionRecord representa uma promoção agendada (promotional_data.csv)
type PromotionRecord struct {
	ProductName        string    `json:"product_name"`
	PromoType          string    `json:"promo_type"`
	DiscountPercentage *float64  `json:"discount_percentage"`
	Region             string    `json:"region"`
	Channel            string    `json:"channel"`
	PromoCost          float64   `json:"promo_cost"`
	PromoStartDate     time.Time `json:"promo_start_date"`
	PromoEndDate       time.Time `json:"promo_end_date"`
}
