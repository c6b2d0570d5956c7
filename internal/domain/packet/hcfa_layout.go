package packet

// point is an absolute position on the form page: X from the left edge,
// Y from the top edge, both in points.
type point struct {
	X, Y float64
}

// hcfaLayout pins every field of the 02/12 HCFA-1500 template. The numbers
// are layout data for one form revision, not logic; a new template revision
// means a new table, nothing else changes.
type hcfaLayout struct {
	// Checkbox marks.
	InsuranceTypeOther point // box 1
	SexMale            point // box 3
	SexFemale          point
	RelationSelf       point // box 6
	EmploymentNo       point // box 10a
	AutoAccidentYes    point // box 10b
	OtherAccidentNo    point // box 10c
	InsuredSexMale     point // box 11
	InsuredSexFemale   point
	OtherHealthPlanNo  point // box 11d
	TaxIDEIN           point // box 25
	AcceptAssignment   point // box 27

	// Patient / insured demographics.
	PatientName       point // box 2
	PatientDOBMonth   point // box 3
	PatientDOBDay     point
	PatientDOBYear    point
	InsuredName       point // box 4
	PatientAddress    point // box 5
	PatientCity       point
	PatientState      point
	PatientZip        point
	PatientPhoneArea  point
	PatientPhoneLocal point
	InsuredAddress    point // box 7
	InsuredCity       point
	InsuredState      point
	InsuredZip        point
	InsuredPhoneArea  point
	InsuredPhoneLocal point
	InsuredDOBMonth   point // box 11a
	InsuredDOBDay     point
	InsuredDOBYear    point

	// Signatures.
	PatientSignature     point // box 12
	PatientSignatureDate point
	InsuredSignature     point // box 13

	// Diagnosis block (box 21). Codes flow left to right, four per line:
	// x = ICDCodeOrigin.X + ICDCodeStrideX*i - ICDCodeWrapX*(i/4),
	// y = ICDCodeOrigin.Y + ICDCodeStrideY*(i/4).
	ICDCodeOrigin  point
	ICDCodeStrideX float64
	ICDCodeWrapX   float64
	ICDCodeStrideY float64
	ICDIndicator   point

	// Charge rows (box 24). Each column's Y is the first row's baseline;
	// row i sits RowStride points lower.
	RowStride        float64
	ServiceFromMonth point
	ServiceFromDay   point
	ServiceFromYear  point
	ServiceToMonth   point
	ServiceToDay     point
	ServiceToYear    point
	PlaceOfService   point
	Procedure        point
	DiagnosisPointer point
	ChargeDollars    point
	ChargeCents      point
	DaysOrUnits      point
	RowNPI           point

	// Bottom strip.
	FederalTaxID         point // box 25
	PatientAccount       point // box 26
	TotalChargeDollars   point // box 28
	TotalChargeCents     point
	PhysicianSignature   point // box 31
	PhysicianSignDate    point
	FacilityName         point // box 32
	FacilityAddress      point
	FacilityCityState    point
	BillingPhoneArea     point // box 33
	BillingPhoneLocal    point
	BillingName          point
	BillingAddress       point
	BillingCityState     point
	BillingNPI           point
}

var hcfa = hcfaLayout{
	InsuranceTypeOther: point{345, 124},
	SexMale:            point{324, 148},
	SexFemale:          point{360, 148},
	RelationSelf:       point{259, 173},
	EmploymentNo:       point{317, 269},
	AutoAccidentYes:    point{274, 292},
	OtherAccidentNo:    point{317, 316},
	InsuredSexMale:     point{511, 268},
	InsuredSexFemale:   point{562, 268},
	OtherHealthPlanNo:  point{432, 340},
	TaxIDEIN:           point{159, 699},
	AcceptAssignment:   point{296, 699},

	PatientName:       point{37, 146},
	PatientDOBMonth:   point{247, 147},
	PatientDOBDay:     point{270, 147},
	PatientDOBYear:    point{290, 147},
	InsuredName:       point{388, 146},
	PatientAddress:    point{37, 171},
	PatientCity:       point{37, 194},
	PatientState:      point{211, 194},
	PatientZip:        point{37, 219},
	PatientPhoneArea:  point{134, 221},
	PatientPhoneLocal: point{162, 221},
	InsuredAddress:    point{388, 170},
	InsuredCity:       point{388, 194},
	InsuredState:      point{555, 194},
	InsuredZip:        point{388, 219},
	InsuredPhoneArea:  point{493, 220},
	InsuredPhoneLocal: point{520, 220},
	InsuredDOBMonth:   point{407, 268},
	InsuredDOBDay:     point{430, 268},
	InsuredDOBYear:    point{450, 268},

	PatientSignature:     point{72, 385},
	PatientSignatureDate: point{280, 385},
	InsuredSignature:     point{430, 385},

	ICDCodeOrigin:  point{50, 484},
	ICDCodeStrideX: 93,
	ICDCodeWrapX:   373,
	ICDCodeStrideY: 12,
	ICDIndicator:   point{327, 474},

	RowStride:        24,
	ServiceFromMonth: point{32, 555},
	ServiceFromDay:   point{53, 555},
	ServiceFromYear:  point{74, 555},
	ServiceToMonth:   point{95, 555},
	ServiceToDay:     point{116, 555},
	ServiceToYear:    point{139, 555},
	PlaceOfService:   point{161, 555},
	Procedure:        point{210, 555},
	DiagnosisPointer: point{355, 555},
	ChargeDollars:    point{387, 555},
	ChargeCents:      point{427, 555},
	DaysOrUnits:      point{455, 555},
	RowNPI:           point{523, 555},

	FederalTaxID:       point{37, 698},
	PatientAccount:     point{190, 698},
	TotalChargeDollars: point{390, 698},
	TotalChargeCents:   point{443, 698},
	PhysicianSignature: point{37, 745},
	PhysicianSignDate:  point{120, 750},
	FacilityName:       point{190, 720},
	FacilityAddress:    point{190, 735},
	FacilityCityState:  point{190, 745},
	BillingPhoneArea:   point{500, 712},
	BillingPhoneLocal:  point{525, 712},
	BillingName:        point{388, 720},
	BillingAddress:     point{388, 735},
	BillingCityState:   point{388, 745},
	BillingNPI:         point{388, 760},
}
