package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PlayerStatus is the squad role of a player.
type PlayerStatus string

const (
	StatusStarter    PlayerStatus = "Titulaire"
	StatusSubstitute PlayerStatus = "Remplaçant"
	StatusReserve    PlayerStatus = "Réserve"
	StatusForSale    PlayerStatus = "À vendre"
	StatusOnLoan     PlayerStatus = "Prêt"
)

// PlayerStatuses lists every status in display order.
var PlayerStatuses = []PlayerStatus{StatusStarter, StatusSubstitute, StatusReserve, StatusForSale, StatusOnLoan}

// PlayerOrigin records how a player joined the club.
type PlayerOrigin string

const (
	OriginAcademy   PlayerOrigin = "Académie"
	OriginInitial   PlayerOrigin = "Initial"
	OriginPurchased PlayerOrigin = "Acheté"
)

// PlayerOrigins lists every origin in display order.
var PlayerOrigins = []PlayerOrigin{OriginAcademy, OriginInitial, OriginPurchased}

// TransferType is the direction of a transfer.
type TransferType string

const (
	TransferSale     TransferType = "sale"
	TransferPurchase TransferType = "purchase"
)

// ProjectType is the long-term objective chosen for a career.
type ProjectType string

const (
	ProjectAcademy  ProjectType = "academie"
	ProjectTrophies ProjectType = "trophees"
	ProjectBudget   ProjectType = "budget"
	ProjectCustom   ProjectType = "custom"
)

// DefaultProjectType is used when a career is created without one.
const DefaultProjectType = ProjectCustom

// canonical folds input to NFC so that decomposed accents ("e" + U+0301)
// compare equal to the precomposed constants above.
func canonical(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ParsePlayerStatus returns the status matching s, ignoring case and
// surrounding space. The result is always the canonical spelling.
func ParsePlayerStatus(s string) (PlayerStatus, error) {
	c := canonical(s)
	for _, st := range PlayerStatuses {
		if strings.EqualFold(string(st), c) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid player status %q", s)
}

// Valid reports whether s is one of PlayerStatuses.
func (s PlayerStatus) Valid() bool {
	_, err := ParsePlayerStatus(string(s))
	return err == nil
}

// ParsePlayerOrigin returns the origin matching s, ignoring case and
// surrounding space.
func ParsePlayerOrigin(s string) (PlayerOrigin, error) {
	c := canonical(s)
	for _, o := range PlayerOrigins {
		if strings.EqualFold(string(o), c) {
			return o, nil
		}
	}
	return "", fmt.Errorf("invalid player origin %q", s)
}

// Valid reports whether o is one of PlayerOrigins.
func (o PlayerOrigin) Valid() bool {
	_, err := ParsePlayerOrigin(string(o))
	return err == nil
}

// ParseTransferType returns the transfer type matching s, ignoring case and
// surrounding space.
func ParseTransferType(s string) (TransferType, error) {
	switch TransferType(strings.ToLower(strings.TrimSpace(s))) {
	case TransferSale:
		return TransferSale, nil
	case TransferPurchase:
		return TransferPurchase, nil
	}
	return "", fmt.Errorf("invalid transfer type %q", s)
}

// Valid reports whether t is sale or purchase.
func (t TransferType) Valid() bool {
	_, err := ParseTransferType(string(t))
	return err == nil
}

// ParseProjectType returns the project type matching s, ignoring case and
// surrounding space.
func ParseProjectType(s string) (ProjectType, error) {
	c := ProjectType(strings.ToLower(canonical(s)))
	switch c {
	case ProjectAcademy, ProjectTrophies, ProjectBudget, ProjectCustom:
		return c, nil
	}
	return "", fmt.Errorf("invalid project type %q", s)
}

// Valid reports whether p is a known project type.
func (p ProjectType) Valid() bool {
	_, err := ParseProjectType(string(p))
	return err == nil
}
