package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldsync-agent/internal/domain"
)

func completeInspection() domain.Inspection {
	return domain.Inspection{
		Meta: domain.InspectionMeta{
			VisitDate:     "2026-03-10",
			StationNumber: "AWS-004",
		},
		Premises: domain.Premises{
			PremisesOn:        "Government Land",
			Condition:         "Good",
			InstalledPosition: "Ground",
			GateLock:          "No",
			Painting:          "Good",
			SignBoard:         "Yes",
			SignBoardCond:     "Good",
			ExposureCondition: "Open",
			SurfaceCondition:  "Grass",
		},
		StationStatus: domain.StationStatus{
			CivilWork:          "Good",
			SolarPanel:         "Good",
			LoggerBoxAppear:    "Good",
			LoggerBoxCondition: "Good",
			LoggerPresence:     "Absent",
			BatteryPresence:    "Absent",
			SIMProvider:        "Dialog",
			SIMType:            "Data",
			SignalStrength:     "Strong",
		},
		Sensors: domain.Sensors{
			Rain: domain.RainSensor{
				TippingBucket:     "Clean",
				FunnelMesh:        "Clean",
				LevellingBubble:   "Centered",
				CalibrationBefore: "10.2",
				CalibrationAfter:  "10.0",
			},
		},
	}
}

func TestValidateInspection_RainGauge(t *testing.T) {
	t.Run("complete payload is valid", func(t *testing.T) {
		ins := completeInspection()
		assert.Empty(t, domain.ValidateInspection(domain.KindRainGauge, &ins))
	})

	t.Run("missing rain calibration is reported by path", func(t *testing.T) {
		ins := completeInspection()
		ins.Sensors.Rain.CalibrationAfter = ""
		missing := domain.ValidateInspection(domain.KindRainGauge, &ins)
		assert.Equal(t, []string{"sensors.rain.calibration_after_ml"}, missing)
	})

	t.Run("AWS sensor blocks are not required", func(t *testing.T) {
		ins := completeInspection()
		ins.Sensors.Temperature = nil
		ins.Sensors.Wind = nil
		assert.Empty(t, domain.ValidateInspection(domain.KindRainGauge, &ins))
	})
}

func TestValidateInspection_WeatherAutomatic(t *testing.T) {
	withAWSSensors := func() domain.Inspection {
		ins := completeInspection()
		ins.Sensors.Temperature = &domain.SensorReport{ScreenCondition: "Clean", Functioning: "Yes"}
		ins.Sensors.Wind = &domain.SensorReport{Functioning: "Yes"}
		ins.Sensors.Pressure = &domain.SensorReport{Functioning: "Yes"}
		return ins
	}

	t.Run("complete payload is valid", func(t *testing.T) {
		ins := withAWSSensors()
		assert.Empty(t, domain.ValidateInspection(domain.KindWeatherAutomatic, &ins))
	})

	t.Run("missing sensor blocks are reported", func(t *testing.T) {
		ins := completeInspection()
		missing := domain.ValidateInspection(domain.KindWeatherAutomatic, &ins)
		assert.Contains(t, missing, "sensors.temperature")
		assert.Contains(t, missing, "sensors.wind")
		assert.Contains(t, missing, "sensors.pressure")
	})

	t.Run("screen condition applies to temperature only", func(t *testing.T) {
		ins := withAWSSensors()
		ins.Sensors.Temperature.ScreenCondition = ""
		missing := domain.ValidateInspection(domain.KindWeatherAutomatic, &ins)
		assert.Equal(t, []string{"sensors.temperature.screen_condition"}, missing)
	})
}

func TestValidateInspection_ConditionalFields(t *testing.T) {
	t.Run("private land requires an owner", func(t *testing.T) {
		ins := completeInspection()
		ins.Premises.PremisesOn = "Private Land"
		missing := domain.ValidateInspection(domain.KindRainGauge, &ins)
		assert.Equal(t, []string{"premises.private_land_owner"}, missing)

		ins.Premises.PrivateLandOwner = "K. Silva"
		assert.Empty(t, domain.ValidateInspection(domain.KindRainGauge, &ins))
	})

	t.Run("a present logger requires its condition", func(t *testing.T) {
		ins := completeInspection()
		ins.StationStatus.LoggerPresence = "Present"
		missing := domain.ValidateInspection(domain.KindRainGauge, &ins)
		assert.Equal(t, []string{"station_status.logger_condition"}, missing)
	})

	t.Run("a locked gate requires the lock condition", func(t *testing.T) {
		ins := completeInspection()
		ins.Premises.GateLock = "Yes"
		missing := domain.ValidateInspection(domain.KindRainGauge, &ins)
		assert.Equal(t, []string{"premises.gate_lock_condition"}, missing)
	})
}
