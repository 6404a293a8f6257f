package sentiment

// valence is a small review-oriented lexicon on the -4..4 scale.
var valence = map[string]float64{
	// positive
	"good": 1.9, "great": 3.1, "excellent": 2.7, "amazing": 2.8, "awesome": 3.1,
	"fantastic": 2.6, "perfect": 2.7, "love": 3.2, "loved": 2.9, "loves": 2.7,
	"like": 1.5, "liked": 1.8, "nice": 1.8, "happy": 2.7, "satisfied": 1.8,
	"recommend": 1.5, "recommended": 1.6, "fast": 1.0, "quick": 1.1, "quickly": 1.0,
	"best": 3.2, "better": 1.9, "wonderful": 2.7, "pleased": 1.9, "helpful": 1.8,
	"reliable": 1.7, "smooth": 1.2, "worth": 0.9, "fine": 0.8, "ok": 0.9,
	"okay": 0.9, "polite": 1.8, "friendly": 2.2, "superb": 3.1, "thanks": 1.9,
	"thank": 1.5, "impressed": 2.1, "durable": 1.2, "sturdy": 1.0, "genuine": 1.6,
	"affordable": 1.3, "safe": 1.9, "secure": 1.4, "intact": 0.8, "ontime": 1.3,
	"beautiful": 2.9, "comfortable": 1.5, "delighted": 2.8, "easy": 1.9, "value": 1.1,

	// negative
	"bad": -2.5, "terrible": -2.1, "horrible": -2.5, "awful": -2.0, "worst": -3.1,
	"poor": -2.1, "hate": -2.7, "hated": -3.2, "disappointed": -1.9, "disappointing": -2.2,
	"late": -1.0, "delay": -1.3, "delayed": -1.3, "delays": -1.4, "slow": -1.1,
	"broken": -1.8, "damaged": -2.2, "defective": -2.1, "fake": -2.3, "missing": -1.2,
	"wrong": -2.1, "rude": -2.0, "refund": -0.9, "return": -0.3, "cheap": -0.6,
	"waste": -1.8, "useless": -1.8, "problem": -1.7, "problems": -1.7, "issue": -0.9,
	"issues": -1.0, "complaint": -1.5, "angry": -2.3, "unhappy": -1.8, "never": -0.6,
	"lost": -1.3, "fraud": -2.8, "scam": -2.6, "pathetic": -2.4, "annoying": -1.9,
	"leaking": -1.4, "torn": -1.6, "expensive": -0.9, "overpriced": -1.9, "cancelled": -1.0,
	"unreliable": -1.9, "frustrating": -2.2, "mediocre": -1.0, "dirty": -1.9, "stale": -1.6,
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "none": true, "nothing": true,
	"neither": true, "nor": true, "without": true, "cannot": true, "cant": true,
	"dont": true, "doesnt": true, "didnt": true, "isnt": true, "wasnt": true,
	"arent": true, "werent": true, "wont": true, "wouldnt": true, "shouldnt": true,
	"couldnt": true, "hasnt": true, "havent": true, "hadnt": true, "aint": true,
}

const (
	boostIncrement = 0.293
	negationScalar = -0.74
)

var boosters = map[string]float64{
	"very": boostIncrement, "really": boostIncrement, "extremely": boostIncrement,
	"absolutely": boostIncrement, "highly": boostIncrement, "totally": boostIncrement,
	"so": boostIncrement, "super": boostIncrement, "incredibly": boostIncrement,
	"most": boostIncrement, "too": boostIncrement,
	"slightly": -boostIncrement, "somewhat": -boostIncrement, "barely": -boostIncrement,
	"kinda": -boostIncrement, "little": -boostIncrement, "partly": -boostIncrement,
}
