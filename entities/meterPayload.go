package entities

// MeterPayload is the wire shape a device posts: measurement groups keyed by
// fixed mnemonic names (V_RN, I_R, P_Total, ...). Any key absent from a group
// stores as null; unknown extra keys are ignored. ReactivePower and
// ApparentPower may be omitted entirely.
type MeterPayload struct {
	MeterID       string              `json:"meter_id"`
	Timestamp     string              `json:"timestamp"`
	Location      string              `json:"location"`
	Voltages      map[string]*float64 `json:"voltages"`
	Currents      map[string]*float64 `json:"currents"`
	Power         map[string]*float64 `json:"power"`
	PowerFactors  map[string]*float64 `json:"power_factors"`
	Frequency     *float64            `json:"frequency"`
	ReactivePower map[string]*float64 `json:"reactive_power,omitempty"`
	ApparentPower map[string]*float64 `json:"apparent_power,omitempty"`
}

// ReadingView is the nested shape returned to dashboards, rebuilt from the
// flat stored columns with the same mnemonic keys used on ingestion.
type ReadingView struct {
	Timestamp     string              `json:"timestamp"`
	Voltages      map[string]*float64 `json:"voltages"`
	Currents      map[string]*float64 `json:"currents"`
	Power         map[string]*float64 `json:"power"`
	ReactivePower map[string]*float64 `json:"reactive_power"`
	ApparentPower map[string]*float64 `json:"apparent_power"`
	PowerFactors  map[string]*float64 `json:"power_factors"`
	Frequency     *float64            `json:"frequency"`
}

// Group names shared by payload and view.
const (
	groupVoltages      = "voltages"
	groupCurrents      = "currents"
	groupPower         = "power"
	groupReactivePower = "reactive_power"
	groupApparentPower = "apparent_power"
	groupPowerFactors  = "power_factors"
)

// measurementField binds one mnemonic key to its flat reading column. This
// table is the single source of the 28-field list; both flattening for
// storage and nesting for responses iterate it.
type measurementField struct {
	group string
	key   string
	slot  func(*MeterReading) **float64
}

var measurementFields = []measurementField{
	{groupVoltages, "V_RN", func(r *MeterReading) **float64 { return &r.VoltageR }},
	{groupVoltages, "V_YN", func(r *MeterReading) **float64 { return &r.VoltageY }},
	{groupVoltages, "V_BN", func(r *MeterReading) **float64 { return &r.VoltageB }},
	{groupVoltages, "V_Avg", func(r *MeterReading) **float64 { return &r.VoltageAvg }},
	{groupVoltages, "V_RY", func(r *MeterReading) **float64 { return &r.VoltageRY }},
	{groupVoltages, "V_YB", func(r *MeterReading) **float64 { return &r.VoltageYB }},
	{groupVoltages, "V_BR", func(r *MeterReading) **float64 { return &r.VoltageBR }},

	{groupCurrents, "I_R", func(r *MeterReading) **float64 { return &r.CurrentR }},
	{groupCurrents, "I_Y", func(r *MeterReading) **float64 { return &r.CurrentY }},
	{groupCurrents, "I_B", func(r *MeterReading) **float64 { return &r.CurrentB }},
	{groupCurrents, "I_N", func(r *MeterReading) **float64 { return &r.CurrentN }},

	{groupPower, "P_R", func(r *MeterReading) **float64 { return &r.PowerR }},
	{groupPower, "P_Y", func(r *MeterReading) **float64 { return &r.PowerY }},
	{groupPower, "P_B", func(r *MeterReading) **float64 { return &r.PowerB }},
	{groupPower, "P_Total", func(r *MeterReading) **float64 { return &r.PowerTotal }},

	{groupReactivePower, "Q_R", func(r *MeterReading) **float64 { return &r.ReactivePowerR }},
	{groupReactivePower, "Q_Y", func(r *MeterReading) **float64 { return &r.ReactivePowerY }},
	{groupReactivePower, "Q_B", func(r *MeterReading) **float64 { return &r.ReactivePowerB }},
	{groupReactivePower, "Q_Total", func(r *MeterReading) **float64 { return &r.ReactivePowerTotal }},

	{groupApparentPower, "S_R", func(r *MeterReading) **float64 { return &r.ApparentPowerR }},
	{groupApparentPower, "S_Y", func(r *MeterReading) **float64 { return &r.ApparentPowerY }},
	{groupApparentPower, "S_B", func(r *MeterReading) **float64 { return &r.ApparentPowerB }},
	{groupApparentPower, "S_Total", func(r *MeterReading) **float64 { return &r.ApparentPowerTotal }},

	{groupPowerFactors, "PF_R", func(r *MeterReading) **float64 { return &r.PowerFactorR }},
	{groupPowerFactors, "PF_Y", func(r *MeterReading) **float64 { return &r.PowerFactorY }},
	{groupPowerFactors, "PF_B", func(r *MeterReading) **float64 { return &r.PowerFactorB }},
	{groupPowerFactors, "PF_Avg", func(r *MeterReading) **float64 { return &r.PowerFactorAvg }},
}

func (p *MeterPayload) groups() map[string]map[string]*float64 {
	return map[string]map[string]*float64{
		groupVoltages:      p.Voltages,
		groupCurrents:      p.Currents,
		groupPower:         p.Power,
		groupReactivePower: p.ReactivePower,
		groupApparentPower: p.ApparentPower,
		groupPowerFactors:  p.PowerFactors,
	}
}

// Flatten decomposes the payload into a storage row with the given canonical
// timestamp. Keys absent from a group, and groups absent from the payload,
// leave their columns nil.
func (p *MeterPayload) Flatten(timestamp string) *MeterReading {
	r := &MeterReading{
		MeterID:   p.MeterID,
		Location:  p.Location,
		Timestamp: timestamp,
		Frequency: p.Frequency,
	}
	groups := p.groups()
	for _, f := range measurementFields {
		if m := groups[f.group]; m != nil {
			*f.slot(r) = m[f.key]
		}
	}
	return r
}

// Nested reconstructs the grouped response shape from the flat columns. Every
// mnemonic key is present in its group; unmeasured fields carry null.
func (r *MeterReading) Nested() ReadingView {
	view := ReadingView{
		Timestamp:     r.Timestamp,
		Voltages:      make(map[string]*float64),
		Currents:      make(map[string]*float64),
		Power:         make(map[string]*float64),
		ReactivePower: make(map[string]*float64),
		ApparentPower: make(map[string]*float64),
		PowerFactors:  make(map[string]*float64),
		Frequency:     r.Frequency,
	}
	groups := map[string]map[string]*float64{
		groupVoltages:      view.Voltages,
		groupCurrents:      view.Currents,
		groupPower:         view.Power,
		groupReactivePower: view.ReactivePower,
		groupApparentPower: view.ApparentPower,
		groupPowerFactors:  view.PowerFactors,
	}
	for _, f := range measurementFields {
		groups[f.group][f.key] = *f.slot(r)
	}
	return view
}
