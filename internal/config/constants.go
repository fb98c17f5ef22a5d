package config

// Version is the transpiler version, compared against the transpiler version
// recorded in candy archives.
const Version = "v2.1.0"

const SourceFileExt = ".java"

// Annotation names recognized on source classes
const (
	AnnotationInterface = "jsweet.lang.Interface"
	AnnotationErased    = "jsweet.lang.Erased"
	AnnotationAmbient   = "jsweet.lang.Ambient"
)

// Candy archive layout
const (
	CandyMetadataEntry   = "META-INF/candy-metadata.json"
	CandyMavenGroupEntry = "META-INF/maven/org.jsweet.candies"
	CandySourcePrefix    = "src/"
	CandyResourcePrefix  = "META-INF/resources/"
	TsDefFileExt         = ".d.ts"
)

// Working directory layout
const (
	CandiesDirName       = "candies"
	CandiesTsdefsDirName = "candies/typings"
	CandiesJsDirName     = "candies/js"
	CandiesStoreFileName = "candies/store.db"
)

// Generated file extensions
const (
	TsFileExt  = ".ts"
	DTsFileExt = ".d.ts"
)
