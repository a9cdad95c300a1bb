package model

const SurahCount = 114

type Surah struct {
	Number     int    `yaml:"number" json:"number"`
	Name       string `yaml:"name" json:"name"`
	ArabicName string `yaml:"arabic" json:"arabicName"`
	VerseCount int    `yaml:"verses" json:"verseCount"`
}

type Verse struct {
	ID          string `db:"id" yaml:"-" json:"id"`
	Surah       int    `db:"surah" yaml:"surah" json:"surah"`
	Verse       int    `db:"verse" yaml:"verse" json:"verse"`
	Arabic      string `db:"arabic_text" yaml:"arabic" json:"arabicText"`
	Translation string `db:"translation" yaml:"translation" json:"translation"`
}
