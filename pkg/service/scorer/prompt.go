package scorer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

func buildScoreSystemPrompt(kind types.EntityKind) string {
	var sb strings.Builder

	sb.WriteString("You are a corporate security risk analyst. Your task is to assess the risk level of a single ")
	sb.WriteString(kind.String())
	sb.WriteString(" record.\n\n")
	sb.WriteString("## Instructions:\n\n")
	sb.WriteString("1. Assign an overall risk score between 0 (no risk) and 100 (critical risk).\n")
	sb.WriteString("2. Break the score down into named component scores, each between 0 and 100.\n")
	sb.WriteString("3. Set trend to one of: improving, stable, deteriorating.\n")
	sb.WriteString("4. Set confidence between 0 and 100 reflecting how certain you are of the score.\n")
	sb.WriteString("5. Provide concrete, actionable recommendations to reduce the risk.\n")
	sb.WriteString("6. Provide a short explanation of the main score drivers.\n")

	return sb.String()
}

func buildScoreUserPrompt(snapshot *model.EntitySnapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## %s record to assess\n\n", snapshot.Kind)
	fmt.Fprintf(&sb, "**ID:** %s\n\n", snapshot.ID)

	keys := make([]string, 0, len(snapshot.Attributes))
	for k := range snapshot.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "**%s:** %v\n", k, snapshot.Attributes[k])
	}

	return sb.String()
}

func buildDetectSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a corporate security risk analyst reviewing an organization's security posture.\n\n")
	sb.WriteString("## Instructions:\n\n")
	sb.WriteString("1. Analyze the assets, personnel, travel plans and incidents below and identify security risks the organization should track.\n")
	sb.WriteString("2. Do NOT propose risks that duplicate entries already in the risk register.\n")
	sb.WriteString("3. For each risk, set source_type to one of: asset, personnel, incident, travel, pattern.\n")
	sb.WriteString("   Use pattern only when the risk emerges from a combination of records rather than a single one.\n")
	sb.WriteString("4. For non-pattern risks, set source_id to the ID of the record the risk was detected from.\n")
	sb.WriteString("5. Set confidence between 0 and 100, impact and likelihood to one of: low, medium, high, critical.\n")
	sb.WriteString("6. Provide concrete recommendations for each risk.\n")
	sb.WriteString("7. If no new risks are found, return an empty array.\n")

	return sb.String()
}

func buildDetectUserPrompt(organizationID string, snapshot *model.OrgSnapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Organization: %s\n\n", organizationID)

	sb.WriteString("## Assets\n\n")
	for _, a := range snapshot.Assets {
		fmt.Fprintf(&sb, "- ID: %s, Name: %s, Type: %s, Location: %s, Department: %s\n",
			a.ID, a.Name, a.AssetType, a.Location, a.Department)
	}

	sb.WriteString("\n## Personnel\n\n")
	for _, p := range snapshot.Personnel {
		fmt.Fprintf(&sb, "- ID: %s, Name: %s, Role: %s, Department: %s, Location: %s, Clearance: %s\n",
			p.ID, p.Name, p.Role, p.Department, p.Location, p.ClearanceLevel)
	}

	sb.WriteString("\n## Travel Plans\n\n")
	for _, tp := range snapshot.TravelPlans {
		fmt.Fprintf(&sb, "- ID: %s, Personnel: %s, Destination: %s (%s), Purpose: %s, Departure: %s, Return: %s\n",
			tp.ID, tp.PersonnelID, tp.Destination, tp.Country, tp.Purpose,
			tp.DepartureDate.Format(time.RFC3339), tp.ReturnDate.Format(time.RFC3339))
	}

	sb.WriteString("\n## Incidents\n\n")
	for _, i := range snapshot.Incidents {
		fmt.Fprintf(&sb, "- ID: %s, Title: %s, Severity: %s, Status: %s, Department: %s\n",
			i.ID, i.Title, i.Severity, i.Status, i.Department)
	}

	sb.WriteString("\n## Existing risk register (do not duplicate)\n\n")
	for _, r := range snapshot.Risks {
		fmt.Fprintf(&sb, "- ID: %d, Title: %s, Category: %s\n", r.ID, r.Title, r.Category)
	}

	return sb.String()
}
