package scraper

// JavaScript snippets evaluated inside the page. Selector lists mirror the
// markup variants Google Maps has been observed to serve; each snippet takes
// the first selector that matches.

// consentScript dismisses the cookie-consent interstitial when one is shown.
const consentScript = `(() => {
  const selectors = [
    'button[aria-label="Accept all"]',
    'button[aria-label="I agree"]',
    'form[action*="consent"] button'
  ];
  for (const sel of selectors) {
    const btn = document.querySelector(sel);
    if (btn) {
      btn.click();
      return true;
    }
  }
  return false;
})()`

// feedScrollScript advances the search-result feed by one viewport so more
// result cards attach.
const feedScrollScript = `(() => {
  const feed = document.querySelector('div[role="feed"]');
  if (!feed) return false;
  feed.scrollBy(0, feed.offsetHeight);
  return true;
})()`

// reviewsTabScript clicks the tab that switches the detail panel to its
// reviews view. Returns whether a tab was found and clicked.
const reviewsTabScript = `(() => {
  const tabs = Array.from(document.querySelectorAll('button[role="tab"]'));
  const tab = tabs.find(t => {
    const label = (t.getAttribute('aria-label') || t.textContent || '').toLowerCase();
    return label.includes('review');
  });
  if (!tab) return false;
  tab.click();
  return true;
})()`

// reviewsScrollScript scrolls the reviews container by one viewport step.
// The container markup varies, so a selector list is probed; as a last
// resort the whole page scrolls.
const reviewsScrollScript = `(() => {
  const selectors = [
    'div[role="main"] div[tabindex="-1"][class*="m6QErb"]',
    'div[role="main"] div[jsaction*="scroll"]',
    'div[role="feed"]'
  ];
  for (const sel of selectors) {
    const el = document.querySelector(sel);
    if (el && el.scrollHeight > el.clientHeight) {
      el.scrollBy(0, el.clientHeight);
      return true;
    }
  }
  window.scrollTo(0, document.body.scrollHeight);
  return false;
})()`

// reviewCountScript counts the review blocks currently attached to the DOM.
const reviewCountScript = `(() => {
  const primary = document.querySelectorAll('div.jJc9Ad').length;
  if (primary > 0) return primary;
  return document.querySelectorAll('div[data-review-id]').length;
})()`
