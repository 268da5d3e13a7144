package slack

var (
	BuildRiskBlocks = buildRiskBlocks
	Truncate        = truncate
)

const MaxHeaderLength = maxHeaderLength
