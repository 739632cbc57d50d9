// Package descriptor models the build-system descriptor files viceversion
// recognizes (pom.xml, setup.py, package.json, build.gradle, Info.plist) and
// the located instances of them.
package descriptor
