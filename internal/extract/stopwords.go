package extract

// German stop-words skipped by both NLP modes. Deliberately short: the
// fallback extractor only needs to reject function words that would
// otherwise pass the capitalization or suffix heuristics.
var germanStopWords = map[string]bool{
	"ich": true, "du": true, "er": true, "sie": true, "es": true,
	"wir": true, "ihr": true, "und": true, "oder": true, "aber": true,
	"denn": true, "weil": true, "dass": true, "wenn": true, "als": true,
	"wie": true, "was": true, "wer": true, "den": true, "dem": true,
	"des": true, "ein": true, "eine": true, "einer": true, "einem": true,
	"einen": true, "eines": true, "der": true, "die": true, "das": true,
	"ist": true, "sind": true, "war": true, "waren": true, "hat": true,
	"haben": true, "wird": true, "werden": true, "kann": true,
	"können": true, "muss": true, "müssen": true, "soll": true,
	"sollen": true, "nicht": true, "auch": true, "nur": true,
	"noch": true, "schon": true, "sehr": true, "von": true, "mit": true,
	"auf": true, "für": true, "aus": true, "bei": true, "nach": true,
	"vor": true, "über": true, "unter": true, "durch": true,
	"ohne": true, "gegen": true, "bis": true, "seit": true, "zum": true,
	"zur": true, "vom": true, "beim": true, "ins": true, "ans": true,
	"sich": true, "mir": true, "dir": true, "ihm": true, "uns": true,
	"euch": true, "ihnen": true, "mein": true, "dein": true,
	"sein": true, "unser": true, "euer": true, "mehr": true,
	"viel": true, "alle": true, "diese": true, "dieser": true,
	"dieses": true, "diesem": true, "diesen": true, "jede": true,
	"jeder": true, "jedes": true, "welche": true, "welcher": true,
	"solche": true, "manche": true, "einige": true, "andere": true,
	"hier": true, "dort": true, "jetzt": true, "dann": true,
	"doch": true, "kein": true, "keine": true,
}
