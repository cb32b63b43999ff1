package domain

// Inspection is the station-kind-tagged payload of a visit: a common
// envelope (meta, premises, station status, remarks) plus a sensor block
// whose shape depends on the station kind. Rain gauge stations carry only
// the rainfall block; automatic weather stations additionally carry
// temperature, wind, pressure and solar radiation blocks.
type Inspection struct {
	Meta            InspectionMeta `json:"meta"`
	Premises        Premises       `json:"premises"`
	StationStatus   StationStatus  `json:"station_status"`
	Sensors         Sensors        `json:"sensors"`
	LastCalibration string         `json:"last_cal_date,omitempty"`
	Remarks         string         `json:"remarks,omitempty"`
}

type InspectionMeta struct {
	StaffName     string      `json:"staff_name"`
	StaffMobile   string      `json:"staff_mobile,omitempty"`
	VisitDate     string      `json:"visit_date"`
	StationNumber string      `json:"station_number"`
	Kind          StationKind `json:"kind"`
}

type Premises struct {
	PremisesOn        string `json:"premises_on"`
	PrivateLandOwner  string `json:"private_land_owner,omitempty"`
	Condition         string `json:"condition"`
	InstalledPosition string `json:"installed_position"`
	Fencing           string `json:"fencing"`
	FencingCondition  string `json:"fencing_condition,omitempty"`
	GateLock          string `json:"gate_lock"`
	GateLockCondition string `json:"gate_lock_condition,omitempty"`
	Painting          string `json:"painting"`
	PaintingCondition string `json:"painting_condition,omitempty"`
	SignBoard         string `json:"sign_board"`
	SignBoardCond     string `json:"sign_board_condition"`
	ExposureCondition string `json:"exposure_condition"`
	SurfaceCondition  string `json:"surface_condition"`
}

type StationStatus struct {
	CivilWork          string `json:"civil_work"`
	SolarPanel         string `json:"solar_panel"`
	SolarPanelCleaned  string `json:"solar_panel_cleaned,omitempty"`
	LoggerBoxAppear    string `json:"logger_box_appearance"`
	LoggerBoxCondition string `json:"logger_box_condition"`
	LoggerPresence     string `json:"logger_presence"`
	LoggerCondition    string `json:"logger_condition,omitempty"`
	BatteryPresence    string `json:"battery_presence"`
	BatterySignal      string `json:"battery_signal,omitempty"`
	SIMProvider        string `json:"sim_provider"`
	SIMType            string `json:"sim_type"`
	PreviousSIM        string `json:"previous_sim,omitempty"`
	SignalStrength     string `json:"signal_strength"`
}

// Sensors holds the per-kind sensor blocks. Rain is present for every
// kind; the remaining blocks are nil for rain gauge stations.
type Sensors struct {
	Rain        RainSensor    `json:"rain"`
	Temperature *SensorReport `json:"temperature,omitempty"`
	Wind        *SensorReport `json:"wind,omitempty"`
	Pressure    *SensorReport `json:"pressure,omitempty"`
	Solar       *SensorReport `json:"solar,omitempty"`
}

type RainSensor struct {
	TippingBucket     string `json:"tipping_bucket"`
	FunnelMesh        string `json:"funnel_mesh"`
	LevellingBubble   string `json:"levelling_bubble"`
	CalibrationBefore string `json:"calibration_before_ml"`
	CalibrationAfter  string `json:"calibration_after_ml"`
}

// SensorReport is the generic AWS sensor block: screen applies to the
// temperature sensor only.
type SensorReport struct {
	ScreenCondition string `json:"screen_condition,omitempty"`
	Functioning     string `json:"functioning"`
	ObservedValue   string `json:"observed_value,omitempty"`
	Fault           string `json:"fault,omitempty"`
}

// ValidateInspection checks required fields as a pure function of
// (kind, payload). It returns the list of missing field paths in a stable
// order; an empty list means the payload is valid for that kind.
func ValidateInspection(kind StationKind, ins *Inspection) []string {
	var missing []string
	req := func(path, val string) {
		if val == "" {
			missing = append(missing, path)
		}
	}

	req("meta.visit_date", ins.Meta.VisitDate)
	req("meta.station_number", ins.Meta.StationNumber)

	p := &ins.Premises
	req("premises.premises_on", p.PremisesOn)
	if p.PremisesOn == "Private Land" {
		req("premises.private_land_owner", p.PrivateLandOwner)
	}
	req("premises.condition", p.Condition)
	req("premises.installed_position", p.InstalledPosition)
	req("premises.gate_lock", p.GateLock)
	if p.GateLock == "Yes" {
		req("premises.gate_lock_condition", p.GateLockCondition)
	}
	req("premises.painting", p.Painting)
	req("premises.sign_board", p.SignBoard)
	req("premises.sign_board_condition", p.SignBoardCond)
	req("premises.exposure_condition", p.ExposureCondition)
	req("premises.surface_condition", p.SurfaceCondition)

	st := &ins.StationStatus
	req("station_status.civil_work", st.CivilWork)
	req("station_status.solar_panel", st.SolarPanel)
	req("station_status.logger_box_appearance", st.LoggerBoxAppear)
	req("station_status.logger_box_condition", st.LoggerBoxCondition)
	req("station_status.logger_presence", st.LoggerPresence)
	if st.LoggerPresence == "Present" {
		req("station_status.logger_condition", st.LoggerCondition)
	}
	req("station_status.battery_presence", st.BatteryPresence)
	if st.BatteryPresence == "Present" {
		req("station_status.battery_signal", st.BatterySignal)
	}
	req("station_status.sim_provider", st.SIMProvider)
	req("station_status.sim_type", st.SIMType)
	req("station_status.signal_strength", st.SignalStrength)

	r := &ins.Sensors.Rain
	req("sensors.rain.tipping_bucket", r.TippingBucket)
	req("sensors.rain.funnel_mesh", r.FunnelMesh)
	req("sensors.rain.levelling_bubble", r.LevellingBubble)
	req("sensors.rain.calibration_before_ml", r.CalibrationBefore)
	req("sensors.rain.calibration_after_ml", r.CalibrationAfter)

	if kind == KindWeatherAutomatic {
		missing = append(missing, validateAWSSensor("sensors.temperature", ins.Sensors.Temperature, true)...)
		missing = append(missing, validateAWSSensor("sensors.wind", ins.Sensors.Wind, false)...)
		missing = append(missing, validateAWSSensor("sensors.pressure", ins.Sensors.Pressure, false)...)
	}

	return missing
}

func validateAWSSensor(path string, s *SensorReport, needScreen bool) []string {
	if s == nil {
		return []string{path}
	}
	var missing []string
	if needScreen && s.ScreenCondition == "" {
		missing = append(missing, path+".screen_condition")
	}
	if s.Functioning == "" {
		missing = append(missing, path+".functioning")
	}
	return missing
}
