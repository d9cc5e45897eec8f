package repoargs

type RepositoryName string

const (
	UserRepoName       RepositoryName = "user"
	MemberCardRepoName RepositoryName = "member_card"
	StatsRepoName      RepositoryName = "stats"
)
