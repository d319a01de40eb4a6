package entities

// MeterReading is one ingested sample, stored flat: 28 independently nullable
// measurement columns plus a frequency scalar. Rows are append-only.
type MeterReading struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	MeterID   string `gorm:"index" json:"meter_id"`
	Location  string `json:"location"`
	Timestamp string `gorm:"index" json:"timestamp"`

	// Voltages
	VoltageR   *float64 `gorm:"column:voltage_r" json:"voltage_r"`
	VoltageY   *float64 `gorm:"column:voltage_y" json:"voltage_y"`
	VoltageB   *float64 `gorm:"column:voltage_b" json:"voltage_b"`
	VoltageAvg *float64 `gorm:"column:voltage_avg" json:"voltage_avg"`
	VoltageRY  *float64 `gorm:"column:voltage_ry" json:"voltage_ry"`
	VoltageYB  *float64 `gorm:"column:voltage_yb" json:"voltage_yb"`
	VoltageBR  *float64 `gorm:"column:voltage_br" json:"voltage_br"`

	// Currents
	CurrentR *float64 `gorm:"column:current_r" json:"current_r"`
	CurrentY *float64 `gorm:"column:current_y" json:"current_y"`
	CurrentB *float64 `gorm:"column:current_b" json:"current_b"`
	CurrentN *float64 `gorm:"column:current_n" json:"current_n"`

	// Real power
	PowerR     *float64 `gorm:"column:power_r" json:"power_r"`
	PowerY     *float64 `gorm:"column:power_y" json:"power_y"`
	PowerB     *float64 `gorm:"column:power_b" json:"power_b"`
	PowerTotal *float64 `gorm:"column:power_total" json:"power_total"`

	// Reactive power
	ReactivePowerR     *float64 `gorm:"column:reactive_power_r" json:"reactive_power_r"`
	ReactivePowerY     *float64 `gorm:"column:reactive_power_y" json:"reactive_power_y"`
	ReactivePowerB     *float64 `gorm:"column:reactive_power_b" json:"reactive_power_b"`
	ReactivePowerTotal *float64 `gorm:"column:reactive_power_total" json:"reactive_power_total"`

	// Apparent power
	ApparentPowerR     *float64 `gorm:"column:apparent_power_r" json:"apparent_power_r"`
	ApparentPowerY     *float64 `gorm:"column:apparent_power_y" json:"apparent_power_y"`
	ApparentPowerB     *float64 `gorm:"column:apparent_power_b" json:"apparent_power_b"`
	ApparentPowerTotal *float64 `gorm:"column:apparent_power_total" json:"apparent_power_total"`

	// Power factor
	PowerFactorR   *float64 `gorm:"column:power_factor_r" json:"power_factor_r"`
	PowerFactorY   *float64 `gorm:"column:power_factor_y" json:"power_factor_y"`
	PowerFactorB   *float64 `gorm:"column:power_factor_b" json:"power_factor_b"`
	PowerFactorAvg *float64 `gorm:"column:power_factor_avg" json:"power_factor_avg"`

	Frequency *float64 `json:"frequency"`
}

func (MeterReading) TableName() string { return "meter_readings" }
