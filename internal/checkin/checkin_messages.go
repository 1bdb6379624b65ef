package checkin

import (
	"fmt"
	"strconv"
	"strings"
)

// User-facing replies, verbatim from the legacy checador.
const (
	msgNotRegistered    = "❌ Tu número no está registrado."
	msgUsageHint        = "⚠️ Envía *entrada* o *salida* o comparte tu ubicación."
	msgInvalidLocation  = "❌ Ubicación inválida. Intenta de nuevo."
	msgCompanyNoSite    = "❌ La empresa no tiene ubicación configurada."
	msgCompanyBadCoords = "❌ Coordenadas de la empresa inválidas."
	msgInternalError    = "⚠️ No pudimos registrar tu checada. Intenta de nuevo más tarde."
)

func msgTextRegistered(tipo RecordType) string {
	return fmt.Sprintf("✅ Tu %s ha sido registrada.", strings.ToLower(string(tipo)))
}

func msgImprecise(accuracyMeters float64) string {
	return fmt.Sprintf(
		"❌ GPS impreciso (%s m).\nActiva ubicación precisa e inténtalo nuevamente.",
		strconv.FormatFloat(accuracyMeters, 'f', -1, 64),
	)
}

func msgOutOfRange(distanceMeters, maxDistanceMeters float64) string {
	return fmt.Sprintf(
		"❌ Estás fuera del rango permitido.\n\n📏 Distancia actual: %.2f m\n📍 Máximo permitido: %.0f m\n\n👉 Acércate más a la empresa para registrar tu checada.",
		distanceMeters, maxDistanceMeters,
	)
}

func msgLocationAccepted(distanceMeters float64) string {
	return fmt.Sprintf("✅ Ubicación validada.\n📏 Distancia: %.2f m", distanceMeters)
}
