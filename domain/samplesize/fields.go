package samplesize

import "strings"

// Field keys, shared by forms, the JSON API, CLI flags and workbook headers
const (
	FieldMMSEChange                 = "mmseChange"
	FieldStandardDeviation          = "standardDeviation"
	FieldStandardizedMeanDifference = "standardizedMeanDifference"
	FieldAlpha                      = "alpha"
	FieldPower                      = "power"
	FieldMCID                       = "minimalClinicallyImportantDifference"
	FieldDropoutRatePercent         = "dropoutRatePercent"
	FieldInterimAnalysis            = "interimAnalysisEnabled"
	FieldDesignEffect               = "designEffect"
)

// FieldKind tells a shell how to render an input
type FieldKind string

const (
	KindNumber  FieldKind = "number"
	KindBoolean FieldKind = "boolean"
)

// FieldGroup mirrors the three sections of the input form
type FieldGroup string

const (
	GroupCommon     FieldGroup = "Common Parameters"
	GroupMethod     FieldGroup = "Method-Specific Parameters"
	GroupAdjustment FieldGroup = "Adjustment Parameters"
)

// Field describes one input
type Field struct {
	Key     string     `json:"key"`
	Flag    string     `json:"flag"` // CLI flag name
	Label   string     `json:"label"`
	Help    string     `json:"help"`
	Default string     `json:"default"`
	Kind    FieldKind  `json:"kind"`
	Group   FieldGroup `json:"group"`
}

// Fields lists the nine inputs in form order
var Fields = []Field{
	{
		Key:     FieldStandardDeviation,
		Flag:    "sd",
		Label:   "Standard Deviation",
		Help:    "The expected standard deviation. Using 2.2 based on the average of SDs provided in Doi et al. (2017).",
		Default: "2.2",
		Kind:    KindNumber,
		Group:   GroupCommon,
	},
	{
		Key:     FieldAlpha,
		Flag:    "alpha",
		Label:   "Alpha",
		Help:    "The probability of making a Type I error (usually set to 0.05).",
		Default: "0.05",
		Kind:    KindNumber,
		Group:   GroupCommon,
	},
	{
		Key:     FieldPower,
		Flag:    "power",
		Label:   "Power",
		Help:    "The probability of correctly rejecting the null hypothesis when it is false (set to 0.8 as per study design).",
		Default: "0.8",
		Kind:    KindNumber,
		Group:   GroupCommon,
	},
	{
		Key:     FieldMMSEChange,
		Flag:    "mmse-change",
		Label:   "MMSE Change (Doi method)",
		Help:    "The expected change in Mini-Mental State Examination (MMSE) score. Using 0.82 based on the difference between intervention and control in Doi et al. (2017).",
		Default: "0.82",
		Kind:    KindNumber,
		Group:   GroupMethod,
	},
	{
		Key:     FieldStandardizedMeanDifference,
		Flag:    "smd",
		Label:   "Standardized Mean Difference (Ito method)",
		Help:    "The standardized mean difference. Using 0.40 based on Ito et al. (2022) for MMSE improvement in music-based interventions.",
		Default: "0.40",
		Kind:    KindNumber,
		Group:   GroupMethod,
	},
	{
		Key:     FieldMCID,
		Flag:    "mcid",
		Label:   "Minimal Clinically Important Difference (Andrews method)",
		Help:    "The Minimal Clinically Important Difference. Using 3 as suggested by Andrews et al. (2019) for MMSE.",
		Default: "3",
		Kind:    KindNumber,
		Group:   GroupMethod,
	},
	{
		Key:     FieldDropoutRatePercent,
		Flag:    "dropout",
		Label:   "Dropout Rate (%)",
		Help:    "The expected percentage of participants who will not complete the study. Set to 20% as per study design.",
		Default: "20",
		Kind:    KindNumber,
		Group:   GroupAdjustment,
	},
	{
		Key:     FieldInterimAnalysis,
		Flag:    "interim",
		Label:   "Interim Analysis",
		Help:    "An interim analysis is planned at 6 months post-intervention start, which requires a larger sample size.",
		Default: "true",
		Kind:    KindBoolean,
		Group:   GroupAdjustment,
	},
	{
		Key:     FieldDesignEffect,
		Flag:    "design-effect",
		Label:   "Design Effect",
		Help:    "A factor that accounts for the increased variability in multi-center studies. Set to 1.2 as a conservative estimate for multicenter design.",
		Default: "1.2",
		Kind:    KindNumber,
		Group:   GroupAdjustment,
	},
}

// FieldGroups lists the form sections in order
var FieldGroups = []FieldGroup{GroupCommon, GroupMethod, GroupAdjustment}

// LookupField finds a field by key, flag or label, ignoring case
func LookupField(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, f := range Fields {
		if strings.EqualFold(f.Key, name) || strings.EqualFold(f.Flag, name) || strings.EqualFold(f.Label, name) {
			return f, true
		}
	}
	return Field{}, false
}

// FieldsInGroup returns the fields of one form section in order
func FieldsInGroup(g FieldGroup) []Field {
	var out []Field
	for _, f := range Fields {
		if f.Group == g {
			out = append(out, f)
		}
	}
	return out
}
