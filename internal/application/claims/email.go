package claims

import (
	"fmt"
	"strings"

	"github.com/claimdesk/backend/internal/domain/claims"
)

// DefaultEmailSubject builds the subject line for an emailed claim
func DefaultEmailSubject(claim *claims.ClaimSubmission) string {
	return fmt.Sprintf("Insurance Claim Submission - %s - Policy %s",
		claim.Insurer.DisplayName(), claim.PolicyNumber)
}

// DefaultEmailBody builds the body for an emailed claim. The attached
// artifact carries the item detail; the body summarizes the claim.
func DefaultEmailBody(claim *claims.ClaimSubmission) string {
	var b strings.Builder

	b.WriteString("Dear Claims Department,\n\n")
	b.WriteString("Please find attached my insurance claim documentation.\n\n")
	b.WriteString("Claim Details:\n")
	fmt.Fprintf(&b, "- Policy Number: %s\n", claim.PolicyNumber)
	fmt.Fprintf(&b, "- Claim Type: %s\n", claim.ClaimType)
	if claim.IncidentDate != nil {
		fmt.Fprintf(&b, "- Incident Date: %s\n", claim.IncidentDate.Format("January 2, 2006"))
	}
	fmt.Fprintf(&b, "- Items Claimed: %d\n", claim.TotalItemCount)
	fmt.Fprintf(&b, "- Total Claimed Value: $%s\n", claim.TotalClaimedValue.StringFixed(2))
	b.WriteString("\nPlease confirm receipt of this claim and advise on next steps.\n\n")
	b.WriteString("Thank you,\n")

	return b.String()
}
