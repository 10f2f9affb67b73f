package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	cardsTable          = "cards"
	practiceEventsTable = "practice_events"
	deckMetaTable       = "deck_meta"
)

var (
	// CardsColumns holds the columns for the "cards" table.
	CardsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "front", Type: field.TypeString},
		{Name: "back", Type: field.TypeString},
		{Name: "hint", Type: field.TypeString, Nullable: true},
		{Name: "tags", Type: field.TypeString, Default: "[]"},
		{Name: "bucket", Type: field.TypeInt, Default: 0},
		{Name: "created_at", Type: field.TypeInt64},
	}
	// CardsTable holds the schema information for the "cards" table.
	CardsTable = &schema.Table{
		Name:       cardsTable,
		Columns:    CardsColumns,
		PrimaryKey: []*schema.Column{CardsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "card_front_back",
				Unique:  true,
				Columns: []*schema.Column{CardsColumns[1], CardsColumns[2]},
			},
			{
				Name:    "card_bucket",
				Unique:  false,
				Columns: []*schema.Column{CardsColumns[5]},
			},
		},
	}

	// PracticeEventsColumns holds the columns for the "practice_events" table.
	PracticeEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "front", Type: field.TypeString},
		{Name: "back", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "previous_bucket", Type: field.TypeInt},
		{Name: "new_bucket", Type: field.TypeInt},
		{Name: "card_id", Type: field.TypeString},
	}
	// PracticeEventsTable holds the schema information for the "practice_events" table.
	PracticeEventsTable = &schema.Table{
		Name:       practiceEventsTable,
		Columns:    PracticeEventsColumns,
		PrimaryKey: []*schema.Column{PracticeEventsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "practice_events_cards_events",
				Columns:    []*schema.Column{PracticeEventsColumns[9]},
				RefColumns: []*schema.Column{CardsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "practiceevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{PracticeEventsColumns[2]},
			},
			{
				Name:    "practiceevent_card_id",
				Unique:  false,
				Columns: []*schema.Column{PracticeEventsColumns[9]},
			},
		},
	}

	// DeckMetaColumns holds the columns for the "deck_meta" table.
	DeckMetaColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString},
		{Name: "value", Type: field.TypeInt64},
	}
	// DeckMetaTable holds scalar deck state such as the current day.
	DeckMetaTable = &schema.Table{
		Name:       deckMetaTable,
		Columns:    DeckMetaColumns,
		PrimaryKey: []*schema.Column{DeckMetaColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		CardsTable,
		PracticeEventsTable,
		DeckMetaTable,
	}
)

func init() {
	PracticeEventsTable.ForeignKeys[0].RefTable = CardsTable
}
