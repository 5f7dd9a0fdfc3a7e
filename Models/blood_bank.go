package Models

import (
	"math"
	"sort"

	"gorm.io/gorm"
)

type BloodBank struct {
	gorm.Model
	Name                string   `gorm:"size:255;not null" json:"name"`
	State               string   `gorm:"size:100" json:"state"`
	District            string   `gorm:"size:100" json:"district"`
	City                string   `gorm:"size:100" json:"city"`
	Address             string   `json:"address"`
	Pincode             string   `gorm:"size:10" json:"pincode"`
	ContactNo           string   `gorm:"size:100" json:"contact_no"`
	Mobile              string   `gorm:"size:100" json:"mobile"`
	Helpline            string   `gorm:"size:100" json:"helpline"`
	Email               string   `gorm:"size:120" json:"email"`
	Website             string   `gorm:"size:255" json:"website"`
	NodalOfficer        string   `gorm:"size:150" json:"nodal_officer"`
	NodalOfficerContact string   `gorm:"size:100" json:"nodal_officer_contact"`
	Category            string   `gorm:"size:100" json:"category"`
	ComponentsAvailable string   `gorm:"size:10" json:"blood_components_available"`
	ApheresisAvailable  string   `gorm:"size:10" json:"apheresis_available"`
	ServiceTime         string   `gorm:"size:50" json:"service_time"`
	LicenseNo           string   `gorm:"size:100" json:"license_no"`
	Latitude            *float64 `gorm:"default:null" json:"latitude"`
	Longitude           *float64 `gorm:"default:null" json:"longitude"`
}

// RankedBloodBank is a listing row with the distance from the query point,
// nil when the bank has no coordinates.
type RankedBloodBank struct {
	BloodBank
	Distance *float64 `json:"distance"`
}

const earthRadiusKm = 6371

// Haversine returns the great-circle distance between two points in km.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1, lon1 = lat1*math.Pi/180, lon1*math.Pi/180
	lat2, lon2 = lat2*math.Pi/180, lon2*math.Pi/180

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// RankByDistance sorts banks ascending by distance from the query point.
// Banks with a missing coordinate get a nil distance and sort last. The
// sort is stable so coordinate-less banks keep their listing order.
func RankByDistance(banks []BloodBank, lat, lng float64) []RankedBloodBank {
	ranked := make([]RankedBloodBank, 0, len(banks))
	for _, bank := range banks {
		row := RankedBloodBank{BloodBank: bank}
		if bank.Latitude != nil && bank.Longitude != nil {
			d := Haversine(lat, lng, *bank.Latitude, *bank.Longitude)
			row.Distance = &d
		}
		ranked = append(ranked, row)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Distance == nil {
			return false
		}
		if ranked[j].Distance == nil {
			return true
		}
		return *ranked[i].Distance < *ranked[j].Distance
	})
	return ranked
}
