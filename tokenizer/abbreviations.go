package tokenizer

// abbreviations end in a period that does not end the sentence.
var abbreviations = []string{
	"Abb.", "Abs.", "Abt.", "allg.", "bzgl.", "bzw.", "ca.", "d.h.", "Dipl.", "Dr.",
	"ebd.", "etc.", "evtl.", "ggf.", "Hr.", "Hrsg.", "i.d.R.", "inkl.", "Jh.", "Kap.",
	"max.", "min.", "Mio.", "Mrd.", "Nr.", "o.ä.", "o.g.", "Prof.", "S.", "sog.",
	"St.", "Str.", "u.a.", "u.ä.", "usw.", "vgl.", "z.B.", "z.T.", "zzgl.",
}

// longest first, so that "z.T." is not cut after "z.".
func init() {
	for i := 1; i < len(abbreviations); i++ {
		for j := i; j > 0 && len(abbreviations[j]) > len(abbreviations[j-1]); j-- {
			abbreviations[j], abbreviations[j-1] = abbreviations[j-1], abbreviations[j]
		}
	}
}
