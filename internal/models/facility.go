package models

import "food-facility-api/internal/geo"

// StatusApproved is the permit status nearby searches default to. Status is
// otherwise an open set taken verbatim from the source data.
const StatusApproved = "APPROVED"

// Facility is a single mobile food facility permit. The embedded Coordinate
// places the permit on the map; district codes are nil when the source left
// them blank.
type Facility struct {
	LocationID          int    `json:"location_id"`
	Applicant           string `json:"applicant"`
	FacilityType        string `json:"facility_type"`
	CNN                 int    `json:"cnn"`
	LocationDescription string `json:"location_description"`
	Address             string `json:"address"`
	BlockLot            string `json:"block_lot"`
	Block               string `json:"block"`
	Lot                 string `json:"lot"`
	Permit              string `json:"permit"`
	Status              string `json:"status"`
	FoodItems           string `json:"food_items"`
	X                   string `json:"x"`
	Y                   string `json:"y"`
	geo.Coordinate
	Schedule       string `json:"schedule"`
	DaysHours      string `json:"days_hours"`
	NOISent        string `json:"noi_sent"`
	Approved       string `json:"approved"`
	Received       string `json:"received"`
	PriorPermit    int    `json:"prior_permit"`
	ExpirationDate string `json:"expiration_date"`
	Location       string `json:"location"`

	FirePreventionDistricts *int `json:"fire_prevention_districts"`
	PoliceDistricts         *int `json:"police_districts"`
	SupervisorDistricts     *int `json:"supervisor_districts"`
	ZipCodes                *int `json:"zip_codes"`
	NeighborhoodsOld        *int `json:"neighborhoods_old"`
}
