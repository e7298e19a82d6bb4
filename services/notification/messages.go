package notification

import (
	"fmt"

	"clinicblocks/models"
	"clinicblocks/utils"
)

// BuildBlockNotification renders the admin-facing notification for a block event.
func BuildBlockNotification(p models.BlockEventPayload) models.Notification {
	n := models.Notification{
		Recipient: AdminRecipient,
		Type:      "system",
		Priority:  "medium",
		Data: map[string]string{
			"blockId": p.BlockID,
			"event":   p.Event,
			"actor":   p.Actor,
		},
	}

	switch p.Event {
	case "deleted":
		n.Title = "Bloqueo eliminado"
		n.Message = "El bloqueo ha sido eliminado exitosamente."
		n.Priority = "low"
	default:
		n.Title = "Bloqueo creado exitosamente"
		n.Message = fmt.Sprintf("Se ha bloqueado %d recurso(s) desde %s hasta %s.",
			len(p.Resources), displayDate(p.StartDate), displayDate(p.EndDate))
		if p.Reason != "" {
			n.Data["reason"] = p.Reason
		}
	}
	return n
}

// displayDate renders YYYY-MM-DD as dd/MM/yyyy, leaving unparseable input untouched.
func displayDate(s string) string {
	d, err := utils.ParseLocalDate(s)
	if err != nil {
		return s
	}
	return d.Format("02/01/2006")
}
