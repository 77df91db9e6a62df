package domain

import "errors"

var (
	ErrMediaNotFound       = errors.New("media not found")
	ErrAniListUserNotFound = errors.New("anilist user not found")
	ErrInvalidQuery        = errors.New("search query must not be empty")
	ErrInvalidSeason       = errors.New("season must be one of WINTER, SPRING, SUMMER, FALL")
)

type MediaType string

const (
	MediaAnime MediaType = "ANIME"
	MediaManga MediaType = "MANGA"
)

type Season string

const (
	SeasonWinter Season = "WINTER"
	SeasonSpring Season = "SPRING"
	SeasonSummer Season = "SUMMER"
	SeasonFall   Season = "FALL"
)

func (s Season) Valid() bool {
	switch s {
	case SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall:
		return true
	}
	return false
}

type MediaTitle struct {
	Romaji  string
	English string
	Native  string
}

type AiringSchedule struct {
	Episode         int
	AiringAt        int64
	TimeUntilAiring int64
}

// Media is an AniList anime or manga entry.
type Media struct {
	ID           int
	Type         MediaType
	Title        MediaTitle
	CoverImage   string
	BannerImage  string
	Episodes     int
	Chapters     int
	Format       string
	Status       string
	Season       string
	SeasonYear   int
	AverageScore int
	Popularity   int
	Genres       []string
	SiteURL      string
	NextAiring   *AiringSchedule
}

func (m *Media) DisplayTitle() string {
	switch {
	case m.Title.English != "":
		return m.Title.English
	case m.Title.Romaji != "":
		return m.Title.Romaji
	default:
		return m.Title.Native
	}
}

// AniListStats is the public activity summary shown on a profile page.
type AniListStats struct {
	Name            string
	AvatarURL       string
	SiteURL         string
	AnimeCount      int
	EpisodesWatched int
	MangaCount      int
	ChaptersRead    int
}
