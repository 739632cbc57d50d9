package gradle

// TaskName is the task the init script registers on every project.
const TaskName = "viceversion"

// TaskFileName is the init script written next to build.gradle.
const TaskFileName = "viceversion.task"

// initScript prints "<project>:<version>" for every project that declares a
// version. Android projects report "<versionCode>-<versionName>" from their
// defaultConfig.
const initScript = `allprojects {
    task ` + TaskName + ` {
        doLast {
            def v = project.version
            def android = project.extensions.findByName('android')
            if (android != null && android.hasProperty('defaultConfig')) {
                def cfg = android.defaultConfig
                if (cfg.versionName != null) {
                    v = cfg.versionCode != null ? "${cfg.versionCode}-${cfg.versionName}" : cfg.versionName
                }
            }
            if (v != null && v.toString() != 'unspecified') {
                println "${project.name}:${v}"
            }
        }
    }
}
`

// Script returns the init script text.
func Script() string {
	return initScript
}
