// Package model defines the records of a tracked career.
package model

// Career is one tracked save-game session and the scope of every other record.
type Career struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	ClubName      string         `json:"club_name"`
	ClubID        *string        `json:"club_id"`
	LeagueName    string         `json:"league_name"`
	Country       string         `json:"country"`
	ManagerName   string         `json:"manager_name"`
	ProjectType   ProjectType    `json:"project_type"`
	CurrentSeason int            `json:"current_season"`
	Budget        float64        `json:"budget"`
	Difficulty    string         `json:"difficulty"`
	StartDate     string         `json:"start_date"`
	IsActive      bool           `json:"is_active"`
	IsArchived    bool           `json:"is_archived"`
	Settings      map[string]any `json:"settings"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
}

// CreateCareerInput holds the fields accepted when a career is created.
type CreateCareerInput struct {
	ClubName      string      `json:"club_name" binding:"required,max=100"`
	LeagueName    string      `json:"league_name" binding:"required,max=100"`
	Country       string      `json:"country" binding:"max=100"`
	ManagerName   string      `json:"manager_name" binding:"required,max=100"`
	ProjectType   ProjectType `json:"project_type" binding:"omitempty,project_type"`
	CurrentSeason int         `json:"current_season" binding:"omitempty,min=1"`
	Budget        float64     `json:"budget" binding:"omitempty,min=0"`
	Difficulty    string      `json:"difficulty" binding:"max=50"`
}

// UpdateCareerInput is a partial career update. Nil fields are left unchanged.
type UpdateCareerInput struct {
	ClubName      *string      `json:"club_name" binding:"omitempty,min=1,max=100"`
	LeagueName    *string      `json:"league_name" binding:"omitempty,min=1,max=100"`
	Country       *string      `json:"country" binding:"omitempty,max=100"`
	ManagerName   *string      `json:"manager_name" binding:"omitempty,min=1,max=100"`
	ProjectType   *ProjectType `json:"project_type" binding:"omitempty,project_type"`
	CurrentSeason *int         `json:"current_season" binding:"omitempty,min=1"`
	Budget        *float64     `json:"budget" binding:"omitempty,min=0"`
	Difficulty    *string      `json:"difficulty" binding:"omitempty,max=50"`
	IsActive      *bool        `json:"is_active"`
	IsArchived    *bool        `json:"is_archived"`
}

// Apply copies every non-nil field of in onto c.
func (in UpdateCareerInput) Apply(c *Career) {
	setString(&c.ClubName, in.ClubName)
	setString(&c.LeagueName, in.LeagueName)
	setString(&c.Country, in.Country)
	setString(&c.ManagerName, in.ManagerName)
	if in.ProjectType != nil {
		c.ProjectType = *in.ProjectType
	}
	setInt(&c.CurrentSeason, in.CurrentSeason)
	setFloat(&c.Budget, in.Budget)
	setString(&c.Difficulty, in.Difficulty)
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.IsArchived != nil {
		c.IsArchived = *in.IsArchived
	}
}

// Player is a squad member.
type Player struct {
	ID             string       `json:"id"`
	CareerID       string       `json:"career_id"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Position       string       `json:"position"`
	OVR            int          `json:"ovr"`
	Potential      int          `json:"potential"`
	Age            int          `json:"age"`
	Origin         PlayerOrigin `json:"origin"`
	Salary         float64      `json:"salary"`
	Value          float64      `json:"value"`
	Status         PlayerStatus `json:"status"`
	PlayStyles     int          `json:"play_styles"`
	PlayStylesPlus int          `json:"play_styles_plus"`
	MatchesPlayed  int          `json:"matches_played"`
	MinutesPlayed  int          `json:"minutes_played"`
	Goals          int          `json:"goals"`
	Assists        int          `json:"assists"`
	CleanSheets    int          `json:"clean_sheets"`
	ContractExpiry *string      `json:"contract_expiry"`
	JerseyNumber   *int         `json:"jersey_number"`
	Nationality    *string      `json:"nationality"`
	Notes          *string      `json:"notes"`
	CreatedAt      string       `json:"created_at"`
	UpdatedAt      string       `json:"updated_at"`
}

// CreatePlayerInput holds the fields accepted when a player is added.
type CreatePlayerInput struct {
	FirstName      string       `json:"first_name" binding:"required,max=100"`
	LastName       string       `json:"last_name" binding:"required,max=100"`
	Position       string       `json:"position" binding:"required,max=10"`
	OVR            int          `json:"ovr" binding:"required,min=40,max=99"`
	Potential      int          `json:"potential" binding:"required,min=40,max=99"`
	Age            int          `json:"age" binding:"required,min=14,max=50"`
	Origin         PlayerOrigin `json:"origin" binding:"required,player_origin"`
	Salary         float64      `json:"salary" binding:"min=0"`
	Value          float64      `json:"value" binding:"min=0"`
	Status         PlayerStatus `json:"status" binding:"required,player_status"`
	PlayStyles     int          `json:"play_styles" binding:"min=0"`
	PlayStylesPlus int          `json:"play_styles_plus" binding:"min=0"`
	JerseyNumber   *int         `json:"jersey_number" binding:"omitempty,min=1,max=99"`
	Nationality    *string      `json:"nationality"`
	ContractExpiry *string      `json:"contract_expiry"`
	Notes          *string      `json:"notes"`
}

// UpdatePlayerInput is a partial player update. Nil fields are left unchanged.
type UpdatePlayerInput struct {
	FirstName      *string       `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName       *string       `json:"last_name" binding:"omitempty,min=1,max=100"`
	Position       *string       `json:"position" binding:"omitempty,min=1,max=10"`
	OVR            *int          `json:"ovr" binding:"omitempty,min=40,max=99"`
	Potential      *int          `json:"potential" binding:"omitempty,min=40,max=99"`
	Age            *int          `json:"age" binding:"omitempty,min=14,max=50"`
	Origin         *PlayerOrigin `json:"origin" binding:"omitempty,player_origin"`
	Salary         *float64      `json:"salary" binding:"omitempty,min=0"`
	Value          *float64      `json:"value" binding:"omitempty,min=0"`
	Status         *PlayerStatus `json:"status" binding:"omitempty,player_status"`
	PlayStyles     *int          `json:"play_styles" binding:"omitempty,min=0"`
	PlayStylesPlus *int          `json:"play_styles_plus" binding:"omitempty,min=0"`
	JerseyNumber   *int          `json:"jersey_number" binding:"omitempty,min=1,max=99"`
	Nationality    *string       `json:"nationality"`
	ContractExpiry *string       `json:"contract_expiry"`
	Notes          *string       `json:"notes"`
	MatchesPlayed  *int          `json:"matches_played" binding:"omitempty,min=0"`
	MinutesPlayed  *int          `json:"minutes_played" binding:"omitempty,min=0"`
	Goals          *int          `json:"goals" binding:"omitempty,min=0"`
	Assists        *int          `json:"assists" binding:"omitempty,min=0"`
	CleanSheets    *int          `json:"clean_sheets" binding:"omitempty,min=0"`
}

// Apply copies every non-nil field of in onto p.
func (in UpdatePlayerInput) Apply(p *Player) {
	setString(&p.FirstName, in.FirstName)
	setString(&p.LastName, in.LastName)
	setString(&p.Position, in.Position)
	setInt(&p.OVR, in.OVR)
	setInt(&p.Potential, in.Potential)
	setInt(&p.Age, in.Age)
	if in.Origin != nil {
		p.Origin = *in.Origin
	}
	setFloat(&p.Salary, in.Salary)
	setFloat(&p.Value, in.Value)
	if in.Status != nil {
		p.Status = *in.Status
	}
	setInt(&p.PlayStyles, in.PlayStyles)
	setInt(&p.PlayStylesPlus, in.PlayStylesPlus)
	if in.JerseyNumber != nil {
		p.JerseyNumber = in.JerseyNumber
	}
	if in.Nationality != nil {
		p.Nationality = in.Nationality
	}
	if in.ContractExpiry != nil {
		p.ContractExpiry = in.ContractExpiry
	}
	if in.Notes != nil {
		p.Notes = in.Notes
	}
	setInt(&p.MatchesPlayed, in.MatchesPlayed)
	setInt(&p.MinutesPlayed, in.MinutesPlayed)
	setInt(&p.Goals, in.Goals)
	setInt(&p.Assists, in.Assists)
	setInt(&p.CleanSheets, in.CleanSheets)
}

// Transfer is a single sale or purchase.
type Transfer struct {
	ID           string       `json:"id"`
	CareerID     string       `json:"career_id"`
	PlayerID     *string      `json:"player_id"`
	PlayerName   string       `json:"player_name"`
	Type         TransferType `json:"type"`
	Amount       float64      `json:"amount"`
	Season       int          `json:"season"`
	TransferDate *string      `json:"transfer_date"`
	FromClub     *string      `json:"from_club"`
	ToClub       *string      `json:"to_club"`
	Notes        *string      `json:"notes"`
	CreatedAt    string       `json:"created_at"`
}

// CreateTransferInput holds the fields accepted when a transfer is recorded.
type CreateTransferInput struct {
	PlayerName   string       `json:"player_name" binding:"required,max=200"`
	Type         TransferType `json:"type" binding:"required,transfer_type"`
	Amount       float64      `json:"amount" binding:"required,gt=0"`
	Season       int          `json:"season" binding:"required,min=1"`
	TransferDate *string      `json:"transfer_date"`
	FromClub     *string      `json:"from_club"`
	ToClub       *string      `json:"to_club"`
	Notes        *string      `json:"notes"`
	PlayerID     *string      `json:"player_id"`
}

// BudgetEntry holds the finances of one season. Amounts are in millions.
type BudgetEntry struct {
	ID                string  `json:"id"`
	CareerID          string  `json:"career_id"`
	Season            int     `json:"season"`
	InitialBudget     float64 `json:"initial_budget"`
	TransferSales     float64 `json:"transfer_sales"`
	TransferPurchases float64 `json:"transfer_purchases"`
	MatchRevenue      float64 `json:"match_revenue"`
	WageExpenses      float64 `json:"wage_expenses"`
	OtherIncome       float64 `json:"other_income"`
	OtherExpenses     float64 `json:"other_expenses"`
	FinalBalance      float64 `json:"final_balance"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// CreateBudgetInput opens a season. A zero Season means "the season after the latest one".
type CreateBudgetInput struct {
	Season        int     `json:"season" binding:"omitempty,min=1"`
	InitialBudget float64 `json:"initial_budget" binding:"min=0"`
	MatchRevenue  float64 `json:"match_revenue" binding:"min=0"`
	WageExpenses  float64 `json:"wage_expenses" binding:"min=0"`
	OtherIncome   float64 `json:"other_income" binding:"min=0"`
	OtherExpenses float64 `json:"other_expenses" binding:"min=0"`
}

// UpdateBudgetInput edits the manually entered amounts of a season.
// Transfer sales and purchases are derived from the transfer ledger.
type UpdateBudgetInput struct {
	InitialBudget *float64 `json:"initial_budget" binding:"omitempty,min=0"`
	MatchRevenue  *float64 `json:"match_revenue" binding:"omitempty,min=0"`
	WageExpenses  *float64 `json:"wage_expenses" binding:"omitempty,min=0"`
	OtherIncome   *float64 `json:"other_income" binding:"omitempty,min=0"`
	OtherExpenses *float64 `json:"other_expenses" binding:"omitempty,min=0"`
}

// Apply copies every non-nil field of in onto b.
func (in UpdateBudgetInput) Apply(b *BudgetEntry) {
	setFloat(&b.InitialBudget, in.InitialBudget)
	setFloat(&b.MatchRevenue, in.MatchRevenue)
	setFloat(&b.WageExpenses, in.WageExpenses)
	setFloat(&b.OtherIncome, in.OtherIncome)
	setFloat(&b.OtherExpenses, in.OtherExpenses)
}

// JournalEntry is a dated free-text note.
type JournalEntry struct {
	ID        string   `json:"id"`
	CareerID  string   `json:"career_id"`
	Season    int      `json:"season"`
	EntryDate string   `json:"entry_date"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// CreateJournalInput holds the fields accepted when a journal entry is written.
type CreateJournalInput struct {
	Season    int      `json:"season" binding:"required,min=1"`
	EntryDate string   `json:"entry_date" binding:"required,datetime=2006-01-02"`
	Title     string   `json:"title" binding:"required,max=200"`
	Content   string   `json:"content" binding:"required"`
	Tags      []string `json:"tags" binding:"omitempty,dive,min=1,max=50"`
}

// UpdateJournalInput is a partial journal update. Nil fields are left unchanged.
type UpdateJournalInput struct {
	Season    *int      `json:"season" binding:"omitempty,min=1"`
	EntryDate *string   `json:"entry_date" binding:"omitempty,datetime=2006-01-02"`
	Title     *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Content   *string   `json:"content" binding:"omitempty,min=1"`
	Tags      *[]string `json:"tags"`
}

// Apply copies every non-nil field of in onto e.
func (in UpdateJournalInput) Apply(e *JournalEntry) {
	setInt(&e.Season, in.Season)
	setString(&e.EntryDate, in.EntryDate)
	setString(&e.Title, in.Title)
	setString(&e.Content, in.Content)
	if in.Tags != nil {
		e.Tags = *in.Tags
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
